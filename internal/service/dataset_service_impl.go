package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/db"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/repository"
)

type datasetService struct {
	uow      db.UnitOfWork
	imports  repository.DatasetImportRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewDatasetService(uow db.UnitOfWork, imports repository.DatasetImportRepo, observers ...UseCaseObserver) DatasetService {
	return &datasetService{
		uow:      uow,
		imports:  imports,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *datasetService) Check(ctx context.Context, src dataset.Source) (*CheckResult, error) {
	docs, err := src.LoadDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset documents: %w", err)
	}

	result := &CheckResult{}
	ds, err := dataset.Parse(docs)
	if err != nil {
		result.Problems = append(result.Problems, err.Error())
		return result, nil
	}
	if errs := dataset.ValidateReferences(ds); len(errs) > 0 {
		for _, e := range errs {
			result.Problems = append(result.Problems, e.Error())
		}
		return result, nil
	}
	idx, err := dataset.Build(ds)
	if err != nil {
		result.Problems = append(result.Problems, err.Error())
		return result, nil
	}
	result.Stats = idx.Stats()
	return result, nil
}

func (s *datasetService) Import(ctx context.Context, src dataset.Source, label string) (imp *domain.DatasetImport, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"source": label}
	defer func() {
		if imp != nil {
			fields["import_id"] = imp.ID
			fields["templates"] = imp.TemplateCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-dataset",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if s.uow == nil {
		return nil, errors.New("dataset store is not configured")
	}

	docs, err := src.LoadDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset documents: %w", err)
	}
	ds, err := dataset.Parse(docs)
	if err != nil {
		return nil, err
	}
	idx, err := dataset.Build(ds)
	if err != nil {
		return nil, err
	}

	st := idx.Stats()
	record := &domain.DatasetImport{
		ID:              uuid.NewString(),
		Source:          label,
		ConceptCount:    st.Concepts,
		ClusterCount:    st.Clusters,
		TemplateCount:   st.Templates,
		InvalidPatterns: st.InvalidPatterns,
		ImportedAt:      startedAt,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDatasetImportRepo(tx).Create(ctx, record); err != nil {
			return err
		}
		txDocs := repository.NewSQLiteDatasetDocumentRepo(tx)
		for _, name := range dataset.DocumentNames {
			if err := txDocs.Put(ctx, name, docs[name], record.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *datasetService) History(ctx context.Context) ([]*domain.DatasetImport, error) {
	if s.imports == nil {
		return nil, errors.New("dataset store is not configured")
	}
	return s.imports.List(ctx)
}
