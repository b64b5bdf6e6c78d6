package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/dmitrijs2005/gophportal/internal/cryptox"
	"github.com/dmitrijs2005/gophportal/internal/dbx"
)

// ErrCorruptSession is returned by Store.Load when a stored value cannot be
// decoded.
var ErrCorruptSession = errors.New("stored session is corrupt")

// Store is the durable slot behind a Manager. Load returns an empty token
// and a nil user for values that were never stored.
type Store interface {
	Load(ctx context.Context) (token string, user *models.UserSummary, err error)
	Save(ctx context.Context, token string, user *models.UserSummary) error
	Clear(ctx context.Context) error
}

// SQLStore keeps the session in the metadata table. The token is sealed
// with key before it is written.
type SQLStore struct {
	db  *sql.DB
	key []byte
}

func NewSQLStore(db *sql.DB, key []byte) *SQLStore {
	return &SQLStore{db: db, key: key}
}

func (s *SQLStore) Load(ctx context.Context) (string, *models.UserSummary, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	var token string
	sealed, err := repo.Get(ctx, common.TokenStorageKey)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
	case err != nil:
		return "", nil, err
	default:
		plain, err := cryptox.Open(s.key, sealed)
		if err != nil {
			return "", nil, fmt.Errorf("%w: token: %v", ErrCorruptSession, err)
		}
		token = string(plain)
	}

	var user *models.UserSummary
	raw, err := repo.Get(ctx, common.UserStorageKey)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
	case err != nil:
		return "", nil, err
	default:
		user = &models.UserSummary{}
		if err := json.Unmarshal(raw, user); err != nil {
			return "", nil, fmt.Errorf("%w: user: %v", ErrCorruptSession, err)
		}
	}

	return token, user, nil
}

// Save writes both keys in one transaction.
func (s *SQLStore) Save(ctx context.Context, token string, user *models.UserSummary) error {
	sealed, err := cryptox.Seal(s.key, []byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, sealed); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserStorageKey, raw)
	})
}

func (s *SQLStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.TokenStorageKey, common.UserStorageKey)
}

var _ Store = (*SQLStore)(nil)
