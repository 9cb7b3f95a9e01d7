package sources

import (
	"context"

	"learnhub/pkg/models"
)

// Provider display names. These are also the keys of the ranking and rating
// tables, so adapters must use them verbatim.
const (
	ProviderYouTube      = "YouTube"
	ProviderCoursera     = "Coursera"
	ProviderUdemy        = "Udemy"
	ProviderMITOCW       = "MIT OpenCourseWare"
	ProviderKhanAcademy  = "Khan Academy"
	ProviderFreeCodeCamp = "freeCodeCamp"
	ProviderCodecademy   = "Codecademy"
	ProviderEdX          = "edX"
	ProviderFutureLearn  = "FutureLearn"
	ProviderClassCentral = "Class Central"
)

// Source is implemented by each external course provider. A source fetches
// its own data (live HTTP or a built-in knowledge table) and maps it into the
// canonical course shape. Sources bound their own result counts so no single
// provider dominates ranking.
type Source interface {
	Name() string
	Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error)
}
