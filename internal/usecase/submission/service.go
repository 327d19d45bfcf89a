package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stac-index/internal/domain/entity"
	"stac-index/internal/observability/logging"
	"stac-index/internal/observability/metrics"
	"stac-index/internal/repository"
)

// Record types used as metric labels.
const (
	typeCatalog   = "catalog"
	typeEcosystem = "ecosystem"
	typeTutorial  = "tutorial"
)

// URLVerifier validates a URL and optionally checks it serves a STAC catalog.
type URLVerifier interface {
	VerifyURL(ctx context.Context, rawURL string, live bool) (string, error)
}

// CatalogInput is a catalog or API submission. Missing fields are empty strings.
type CatalogInput struct {
	IsAPI      bool
	URL        string
	Slug       string
	Title      string
	Summary    string
	Access     string
	AccessInfo string
	Email      string
}

// EcosystemInput is a software tool submission.
type EcosystemInput struct {
	URL        string
	Title      string
	Summary    string
	Categories []string
	Language   string
	Email      string
}

// TutorialInput is a tutorial submission. Language is a spoken-language code.
type TutorialInput struct {
	URL      string
	Title    string
	Summary  string
	Language string
	Tags     []string
	Email    string
}

// Service validates submissions and stores them.
type Service struct {
	Catalogs  repository.CatalogRepository
	Ecosystem repository.EcosystemRepository
	Tutorials repository.TutorialRepository
	Verifier  URLVerifier
	Reference entity.ReferenceData

	// Now stamps created and updated. time.Now when nil.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AddCatalog checks, in order, access, access details, URL (fetched unless the
// catalog is private), slug, title, summary and email, then rejects duplicates
// and taken slugs before storing the catalog. It returns the public form.
func (s *Service) AddCatalog(ctx context.Context, in CatalogInput) (*entity.Catalog, error) {
	c, err := s.addCatalog(ctx, in)
	s.record(ctx, typeCatalog, err)
	return c, err
}

func (s *Service) addCatalog(ctx context.Context, in CatalogInput) (*entity.Catalog, error) {
	access, err := entity.CheckAccess(in.Access)
	if err != nil {
		return nil, err
	}
	accessInfo, err := entity.CheckAccessInfo(access, in.AccessInfo)
	if err != nil {
		return nil, err
	}
	url, err := s.Verifier.VerifyURL(ctx, in.URL, access != entity.AccessPrivate)
	if err != nil {
		return nil, err
	}
	slug, err := entity.CheckSlug(in.Slug)
	if err != nil {
		return nil, err
	}
	title, err := entity.CheckTitle(in.Title, entity.MaxTitleLength)
	if err != nil {
		return nil, err
	}
	summary, err := entity.CheckSummary(in.Summary)
	if err != nil {
		return nil, err
	}
	email, err := entity.CheckEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if err := CheckDuplicate(ctx, entity.CollectionCatalogs, s.Catalogs, url, title); err != nil {
		return nil, persistenceOr(entity.CollectionCatalogs, err)
	}
	existing, err := s.Catalogs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, persistenceError(entity.CollectionCatalogs, fmt.Errorf("lookup slug: %w", err))
	}
	if existing != nil {
		return nil, &entity.SlugCollisionError{Slug: slug}
	}

	now := s.now()
	catalog := &entity.Catalog{
		Slug:       slug,
		URL:        url,
		Title:      title,
		Summary:    summary,
		Access:     access,
		AccessInfo: accessInfo,
		IsAPI:      in.IsAPI,
		Email:      email,
		Created:    now,
		Updated:    now,
	}
	if err := s.Catalogs.Create(ctx, catalog); err != nil {
		var slugErr *entity.SlugCollisionError
		if errors.As(err, &slugErr) {
			return nil, slugErr
		}
		return nil, persistenceError(entity.CollectionCatalogs, err)
	}
	return catalog.Upgrade(), nil
}

// AddEcosystem checks URL, title, summary, categories, programming language and
// email, rejects duplicates and stores the entry. The URL is not fetched.
func (s *Service) AddEcosystem(ctx context.Context, in EcosystemInput) (*entity.Ecosystem, error) {
	e, err := s.addEcosystem(ctx, in)
	s.record(ctx, typeEcosystem, err)
	return e, err
}

func (s *Service) addEcosystem(ctx context.Context, in EcosystemInput) (*entity.Ecosystem, error) {
	url, err := s.Verifier.VerifyURL(ctx, in.URL, false)
	if err != nil {
		return nil, err
	}
	title, err := entity.CheckTitle(in.Title, entity.MaxTitleLength)
	if err != nil {
		return nil, err
	}
	summary, err := entity.CheckSummary(in.Summary)
	if err != nil {
		return nil, err
	}
	categories, err := entity.CheckCategories(in.Categories)
	if err != nil {
		return nil, err
	}
	language, err := entity.CheckLanguage(in.Language, s.Reference)
	if err != nil {
		return nil, err
	}
	email, err := entity.CheckEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if err := CheckDuplicate(ctx, entity.CollectionEcosystem, s.Ecosystem, url, title); err != nil {
		return nil, persistenceOr(entity.CollectionEcosystem, err)
	}

	now := s.now()
	entry := &entity.Ecosystem{
		URL:        url,
		Title:      title,
		Summary:    summary,
		Categories: categories,
		Language:   language,
		Email:      email,
		Created:    now,
		Updated:    now,
	}
	if err := s.Ecosystem.Create(ctx, entry); err != nil {
		return nil, persistenceError(entity.CollectionEcosystem, err)
	}
	return entry.Upgrade(), nil
}

// AddTutorial checks URL, title (up to 200 characters), summary, tags, spoken
// language and email, rejects duplicates and stores the tutorial with its tags
// lowercased. The URL is not fetched.
func (s *Service) AddTutorial(ctx context.Context, in TutorialInput) (*entity.Tutorial, error) {
	t, err := s.addTutorial(ctx, in)
	s.record(ctx, typeTutorial, err)
	return t, err
}

func (s *Service) addTutorial(ctx context.Context, in TutorialInput) (*entity.Tutorial, error) {
	url, err := s.Verifier.VerifyURL(ctx, in.URL, false)
	if err != nil {
		return nil, err
	}
	title, err := entity.CheckTitle(in.Title, entity.MaxTutorialTitleLength)
	if err != nil {
		return nil, err
	}
	summary, err := entity.CheckSummary(in.Summary)
	if err != nil {
		return nil, err
	}
	tags, err := entity.CheckTags(in.Tags)
	if err != nil {
		return nil, err
	}
	language, err := entity.CheckSpokenLanguage(in.Language, s.Reference)
	if err != nil {
		return nil, err
	}
	email, err := entity.CheckEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if err := CheckDuplicate(ctx, entity.CollectionTutorials, s.Tutorials, url, title); err != nil {
		return nil, persistenceOr(entity.CollectionTutorials, err)
	}

	now := s.now()
	tutorial := &entity.Tutorial{
		URL:      url,
		Title:    title,
		Summary:  summary,
		Tags:     tags,
		Language: language,
		Email:    email,
		Created:  now,
		Updated:  now,
	}
	if err := s.Tutorials.Create(ctx, tutorial); err != nil {
		return nil, persistenceError(entity.CollectionTutorials, err)
	}
	return tutorial.Upgrade(), nil
}

// record logs and counts the outcome of one submission.
func (s *Service) record(ctx context.Context, recordType string, err error) {
	logger := logging.WithRequestID(ctx, slog.Default())

	var persistErr *entity.PersistenceError
	switch {
	case err == nil:
		metrics.RecordSubmission(recordType, metrics.OutcomeSuccess)
		logger.Info("submission stored", slog.String("type", recordType))
	case errors.As(err, &persistErr):
		metrics.RecordSubmission(recordType, metrics.OutcomeError)
		logger.Error("submission failed",
			slog.String("type", recordType),
			slog.Any("error", persistErr.Err))
	default:
		metrics.RecordSubmission(recordType, metrics.OutcomeRejected)
		logger.Info("submission rejected",
			slog.String("type", recordType),
			slog.String("reason", err.Error()))
	}
}

// persistenceOr passes duplicate errors through and turns storage failures
// into a PersistenceError.
func persistenceOr(collection entity.Collection, err error) error {
	var dupErr *entity.DuplicateError
	if errors.As(err, &dupErr) {
		return err
	}
	return persistenceError(collection, err)
}

func persistenceError(collection entity.Collection, err error) *entity.PersistenceError {
	return &entity.PersistenceError{
		Message: fmt.Sprintf("Adding to the %s database failed. Please contact us for details.", persistenceNoun(collection)),
		Err:     err,
	}
}

func persistenceNoun(collection entity.Collection) string {
	switch collection {
	case entity.CollectionCatalogs:
		return "catalog"
	case entity.CollectionTutorials:
		return "tutorial"
	}
	return "ecosystem"
}
