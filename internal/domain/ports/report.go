package ports

import (
	"context"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// ReportWriter persists the summary of a generation run
type ReportWriter interface {
	Write(ctx context.Context, path string, report *entities.RunReport) error
}
