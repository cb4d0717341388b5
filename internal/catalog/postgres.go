package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/migration"
	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/utils"
	"github.com/rizqapp/rizq/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Client is the Postgres-backed catalog: parameterized reads against the
// four content tables and the transactional completion upsert.
type Client struct {
	connStr string
	db      *sql.DB
}

func NewClient(connStr string) *Client {
	return &Client{
		connStr: connStr,
	}
}

// ValidateConnString checks that a connection string is a valid PostgreSQL
// connection string (URI or DSN) and carries no embedded password.
// Credentials belong in the environment, .pgpass, or the OS keyring.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password, in either URL or DSN form.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := ValidateConnString(connStr)
	return errors.Is(err, ErrEmbeddedCredentials)
}

func (c *Client) Open() error {
	if c.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	c.db = db
	return nil
}

func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Migrate applies the catalog schema migrations. Intended for self-hosted
// catalogs; the hosted backend manages its own schema.
func (c *Client) Migrate(logFn func(string)) error {
	if err := c.Open(); err != nil {
		return err
	}

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(c.db, subFS)
	_, err = runner.ApplyMigrations(logFn)
	return err
}

func (c *Client) FetchAllDuas(ctx context.Context) ([]models.Dua, error) {
	if err := c.Open(); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(title_arabic, ''), arabic,
		       COALESCE(transliteration, ''), translation, COALESCE(source, ''),
		       repetitions, COALESCE(recommended_time, ''), COALESCE(difficulty, ''),
		       xp_value, COALESCE(benefit, ''), COALESCE(category_id, 0)
		FROM duas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duas: %w", err)
	}
	defer rows.Close()

	var duas []models.Dua
	for rows.Next() {
		var d models.Dua
		var recommendedTime, difficulty string
		err := rows.Scan(&d.ID, &d.Title, &d.TitleArabic, &d.Arabic,
			&d.Transliteration, &d.Translation, &d.Source,
			&d.Repetitions, &recommendedTime, &difficulty,
			&d.XPValue, &d.Benefit, &d.CategoryID)
		if err != nil {
			return nil, err
		}
		d.RecommendedTime = models.TimeSlot(recommendedTime)
		d.Difficulty = models.Difficulty(difficulty)
		duas = append(duas, d)
	}
	return duas, rows.Err()
}

func (c *Client) FetchJourneyWithDuas(ctx context.Context, id string) (models.JourneyWithDuas, error) {
	journeys, err := c.FetchJourneysWithDuas(ctx, []string{id})
	if err != nil {
		return models.JourneyWithDuas{}, err
	}
	if len(journeys) == 0 {
		return models.JourneyWithDuas{}, fmt.Errorf("journey not found: %s", id)
	}
	return journeys[0], nil
}

func (c *Client) FetchJourneysWithDuas(ctx context.Context, ids []string) ([]models.JourneyWithDuas, error) {
	if err := c.Open(); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, slug, COALESCE(description, ''), COALESCE(emoji, ''),
		       duration_min, daily_xp, is_premium, is_featured, sort_order
		FROM journeys`
	args := []interface{}{}
	if ids != nil {
		query += ` WHERE id = ANY($1)`
		args = append(args, pq.Array(ids))
	}
	query += ` ORDER BY sort_order, id`

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journeys: %w", err)
	}
	defer rows.Close()

	var journeys []models.JourneyWithDuas
	index := make(map[string]int)
	for rows.Next() {
		var j models.JourneyWithDuas
		err := rows.Scan(&j.ID, &j.Name, &j.Slug, &j.Description, &j.Emoji,
			&j.DurationMin, &j.DailyXP, &j.IsPremium, &j.IsFeatured, &j.SortOrder)
		if err != nil {
			return nil, err
		}
		index[j.ID] = len(journeys)
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberQuery := `
		SELECT journey_id, dua_id, time_slot, sort_order
		FROM journey_duas`
	memberArgs := []interface{}{}
	if ids != nil {
		memberQuery += ` WHERE journey_id = ANY($1)`
		memberArgs = append(memberArgs, pq.Array(ids))
	}
	memberQuery += ` ORDER BY journey_id, sort_order`

	memberRows, err := c.db.QueryContext(ctx, memberQuery, memberArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journey duas: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var journeyID, timeSlot string
		var jd models.JourneyDua
		if err := memberRows.Scan(&journeyID, &jd.DuaID, &timeSlot, &jd.SortOrder); err != nil {
			return nil, err
		}
		jd.TimeSlot = models.TimeSlot(timeSlot)
		if i, ok := index[journeyID]; ok {
			journeys[i].Duas = append(journeys[i].Duas, jd)
		}
	}
	return journeys, memberRows.Err()
}

// FetchCatalog fetches the full catalog snapshot in one pass.
func (c *Client) FetchCatalog(ctx context.Context) (models.Catalog, error) {
	duas, err := c.FetchAllDuas(ctx)
	if err != nil {
		return models.Catalog{}, err
	}
	journeys, err := c.FetchJourneysWithDuas(ctx, nil)
	if err != nil {
		return models.Catalog{}, err
	}
	return models.Catalog{
		Duas:      duas,
		Journeys:  journeys,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// RecordCompletion upserts the activity row and the per-user aggregate in a
// single transaction. Recording the same (user, dua, day) twice is a no-op:
// no duplicate row, no double XP. Returns the updated profile.
func (c *Client) RecordCompletion(ctx context.Context, userID string, duaID, xpAwarded int, day string) (models.Profile, error) {
	if err := c.Open(); err != nil {
		return models.Profile{}, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO user_activity (user_id, dua_id, day, xp_awarded)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, dua_id, day) DO NOTHING`,
		userID, duaID, day, xpAwarded)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to record activity: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return models.Profile{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return models.Profile{}, err
	}

	var p models.Profile
	var lastActive sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT total_xp, current_streak, longest_streak, last_active_day
		FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID).
		Scan(&p.TotalXP, &p.CurrentStreak, &p.LongestStreak, &lastActive)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	p.UserID = userID
	p.LastActiveDay = lastActive.String

	if inserted > 0 {
		p.TotalXP += xpAwarded

		yesterday, _ := utils.DayBefore(day)
		switch p.LastActiveDay {
		case day:
			// Streak already counted for this day
		case yesterday:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
		p.LastActiveDay = day
	}
	p.Level = p.TotalXP/constants.LevelXPStep + 1
	p.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		UPDATE user_profiles
		SET total_xp = $2, level = $3, current_streak = $4,
		    longest_streak = $5, last_active_day = $6, updated_at = $7
		WHERE user_id = $1`,
		userID, p.TotalXP, p.Level, p.CurrentStreak,
		p.LongestStreak, p.LastActiveDay, p.UpdatedAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}
