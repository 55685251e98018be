package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vortex-fintech/agenda/config"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/retry"
)

const (
	flagYes = "S"
	flagNo  = "N"
)

const columns = `contato_id, contato_nome, contato_email, contato_celular, contato_telefone,
	contato_sn_favorito, contato_sn_ativo, contato_dh_cad`

const (
	querySchema = `CREATE TABLE IF NOT EXISTS contato (
	contato_id          BIGSERIAL PRIMARY KEY,
	contato_nome        VARCHAR(100) NOT NULL,
	contato_email       VARCHAR(255),
	contato_celular     VARCHAR(11) NOT NULL UNIQUE,
	contato_telefone    VARCHAR(10),
	contato_sn_favorito CHAR(1) NOT NULL DEFAULT 'N',
	contato_sn_ativo    CHAR(1) NOT NULL DEFAULT 'S',
	contato_dh_cad      TIMESTAMP NOT NULL DEFAULT now()
)`

	queryFindByID        = `SELECT ` + columns + ` FROM contato WHERE contato_id = $1`
	queryFindByMobile    = `SELECT ` + columns + ` FROM contato WHERE contato_celular = $1`
	queryFindByMobileNot = `SELECT ` + columns + ` FROM contato WHERE contato_celular = $1 AND contato_id <> $2`
	queryListActive      = `SELECT ` + columns + ` FROM contato WHERE contato_sn_ativo = 'S' ORDER BY contato_nome`
	queryListFavorites   = `SELECT ` + columns + ` FROM contato WHERE contato_sn_favorito = 'S' AND contato_sn_ativo = 'S' ORDER BY contato_nome`
	querySearch          = `SELECT ` + columns + ` FROM contato
	WHERE contato_sn_ativo = 'S'
	  AND (LOWER(contato_nome) LIKE '%' || LOWER($1) || '%' OR contato_celular LIKE '%' || $1 || '%')
	ORDER BY contato_nome`

	queryInsert = `INSERT INTO contato (contato_nome, contato_email, contato_celular, contato_telefone,
	contato_sn_favorito, contato_sn_ativo)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING contato_id, contato_dh_cad`
	queryUpdate = `UPDATE contato SET contato_nome = $1, contato_email = $2, contato_celular = $3,
	contato_telefone = $4, contato_sn_favorito = $5, contato_sn_ativo = $6
	WHERE contato_id = $7
	RETURNING contato_dh_cad`
)

// Postgres is a Repository over the contato table.
type Postgres struct {
	db   *sql.DB
	exec Executor
}

// NewPostgres wraps an open handle. The pgx driver is registered as "pgx".
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres opens the pool described by cfg and pings it under
// retry.RetryInit, so a database that is still starting is waited for.
func OpenPostgres(ctx context.Context, cfg config.DB, log logger.LoggerInterface) (*Postgres, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("store: empty database URL")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	err = retry.RetryInit(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			log.Warnw("database not ready", "err", err)
			return err
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return NewPostgres(db), nil
}

func (p *Postgres) x() Executor { return UseExecutor(p.db, p.exec) }

// Migrate creates the contato table when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.x().ExecContext(ctx, querySchema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) FindByID(ctx context.Context, id int64) (contact.Contact, error) {
	return p.one(ctx, queryFindByID, id)
}

func (p *Postgres) FindByMobile(ctx context.Context, mobile string) (contact.Contact, error) {
	return p.one(ctx, queryFindByMobile, mobile)
}

func (p *Postgres) FindByMobileExcludingID(ctx context.Context, mobile string, id int64) (contact.Contact, error) {
	return p.one(ctx, queryFindByMobileNot, mobile, id)
}

func (p *Postgres) ListActive(ctx context.Context) ([]contact.Contact, error) {
	return p.many(ctx, queryListActive)
}

func (p *Postgres) ListFavorites(ctx context.Context) ([]contact.Contact, error) {
	return p.many(ctx, queryListFavorites)
}

func (p *Postgres) Search(ctx context.Context, term string) ([]contact.Contact, error) {
	return p.many(ctx, querySearch, escapeLike(term))
}

func (p *Postgres) Save(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	var created time.Time
	args := []any{c.Name, nullable(c.Email), c.Mobile, nullable(c.Landline), flag(c.Favorite), flag(c.Active)}

	var err error
	if c.ID == 0 {
		err = p.x().QueryRowContext(ctx, queryInsert, args...).Scan(&c.ID, &created)
	} else {
		err = p.x().QueryRowContext(ctx, queryUpdate, append(args, c.ID)...).Scan(&created)
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return contact.Contact{}, ErrNotFound
	case IsUniqueViolation(err):
		return contact.Contact{}, ErrDuplicateMobile
	case err != nil:
		return contact.Contact{}, fmt.Errorf("store: save: %w", err)
	}
	c.CreatedAt = &created
	return c, nil
}

func (p *Postgres) InTx(ctx context.Context, fn func(Repository) error) error {
	if p.exec != nil {
		return fn(p)
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	if err := fn(&Postgres{db: p.db, exec: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (contact.Contact, error) {
	var (
		c                contact.Contact
		email, landline  sql.NullString
		favorite, active string
		created          time.Time
	)
	if err := s.Scan(&c.ID, &c.Name, &email, &c.Mobile, &landline, &favorite, &active, &created); err != nil {
		return contact.Contact{}, err
	}
	c.Email = email.String
	c.Landline = landline.String
	c.Favorite = favorite == flagYes
	c.Active = active == flagYes
	c.CreatedAt = &created
	return c, nil
}

func (p *Postgres) one(ctx context.Context, query string, args ...any) (contact.Contact, error) {
	c, err := scanContact(p.x().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return contact.Contact{}, ErrNotFound
	}
	if err != nil {
		return contact.Contact{}, fmt.Errorf("store: query: %w", err)
	}
	return c, nil
}

func (p *Postgres) many(ctx context.Context, query string, args ...any) ([]contact.Contact, error) {
	rows, err := p.x().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	out := []contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}
	return out, nil
}

func flag(b bool) string {
	if b {
		return flagYes
	}
	return flagNo
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in term match literally.
func escapeLike(term string) string { return likeEscaper.Replace(term) }
