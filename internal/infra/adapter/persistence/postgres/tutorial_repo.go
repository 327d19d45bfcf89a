package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"stac-index/internal/domain/entity"
	"stac-index/internal/repository"
)

type TutorialRepo struct{ db Querier }

func NewTutorialRepo(db Querier) repository.TutorialRepository {
	return &TutorialRepo{db: db}
}

const tutorialColumns = `id, url, title, summary, tags, language, email, created, updated`

func scanTutorial(row rowScanner) (*entity.Tutorial, error) {
	var (
		t     entity.Tutorial
		email sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.URL, &t.Title, &t.Summary, pq.Array(&t.Tags),
		&t.Language, &email, &t.Created, &t.Updated,
	); err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Email = email.String
	return &t, nil
}

func (repo *TutorialRepo) queryTutorials(ctx context.Context, query string, args ...any) ([]*entity.Tutorial, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tutorials := make([]*entity.Tutorial, 0, 50)
	for rows.Next() {
		t, err := scanTutorial(rows)
		if err != nil {
			return nil, err
		}
		tutorials = append(tutorials, t)
	}
	return tutorials, rows.Err()
}

func (repo *TutorialRepo) List(ctx context.Context) ([]*entity.Tutorial, error) {
	const query = `
SELECT ` + tutorialColumns + `
FROM tutorials
ORDER BY title ASC`
	tutorials, err := repo.queryTutorials(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return tutorials, nil
}

func (repo *TutorialRepo) ListNewest(ctx context.Context, limit int) ([]*entity.Tutorial, error) {
	const query = `
SELECT ` + tutorialColumns + `
FROM tutorials
ORDER BY created DESC
LIMIT $1`
	tutorials, err := repo.queryTutorials(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListNewest: %w", err)
	}
	return tutorials, nil
}

func (repo *TutorialRepo) ListKeys(ctx context.Context) ([]entity.ListingKey, error) {
	keys, err := scanKeys(ctx, repo.db, `SELECT url, title FROM tutorials`)
	if err != nil {
		return nil, fmt.Errorf("ListKeys: %w", err)
	}
	return keys, nil
}

func (repo *TutorialRepo) ListTags(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT unnest(tags) AS tag
FROM tutorials
ORDER BY tag ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]string, 0, 100)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("ListTags: Scan: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (repo *TutorialRepo) Create(ctx context.Context, tutorial *entity.Tutorial) error {
	const query = `
INSERT INTO tutorials (url, title, summary, tags, language, email, created, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		tutorial.URL, tutorial.Title, tutorial.Summary, pq.Array(tutorial.Tags),
		tutorial.Language, nullString(tutorial.Email), tutorial.Created, tutorial.Updated,
	).Scan(&tutorial.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
