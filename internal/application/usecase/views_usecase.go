package usecase

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// ViewsUseCase (re)builds the database, table and views over stored reports.
// Every statement is idempotent, so a failed run is repaired by running again.
type ViewsUseCase struct {
	orchestrator *QueryOrchestrator
	templates    fs.FS
	order        []string
}

// NewViewsUseCase creates a new views use case over the given templates,
// executed in order.
func NewViewsUseCase(orchestrator *QueryOrchestrator, templates fs.FS, order []string) *ViewsUseCase {
	return &ViewsUseCase{orchestrator: orchestrator, templates: templates, order: order}
}

// Statements loads the templates bound to the database and report location.
func (uc *ViewsUseCase) Statements(database, emissionsLocation string) ([]entity.QueryStatement, error) {
	placeholders := map[string]string{
		"database_name":      database,
		"emissions_location": emissionsLocation,
	}

	statements := make([]entity.QueryStatement, 0, len(uc.order))
	for _, name := range uc.order {
		data, err := fs.ReadFile(uc.templates, name)
		if err != nil {
			return nil, fmt.Errorf("error reading query template %s: %w", name, err)
		}
		statements = append(statements, entity.QueryStatement{
			Name:         name,
			Template:     string(data),
			Placeholders: placeholders,
		})
	}
	return statements, nil
}

// Rebuild runs every statement against workgroup.
func (uc *ViewsUseCase) Rebuild(ctx context.Context, database, emissionsLocation, workgroup string) error {
	statements, err := uc.Statements(database, emissionsLocation)
	if err != nil {
		return err
	}
	return uc.orchestrator.Run(ctx, statements, workgroup)
}
