package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"proctor/config"
	"proctor/infras/otel"
	"proctor/infras/postgres"
	"proctor/infras/s3"
	"proctor/shared/constant"
	"proctor/shared/logger"
	"proctor/shared/password"
	"proctor/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const seedActor = "seed"

type seedUser struct {
	Handle   string `db:"user_id"`
	Password string `db:"password"`
	Role     string `db:"role"`
}

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	if cfg.Server.Env == constant.ServerEnvTest {
		log.Info().Msg("Seeding is disabled in the test environment.")

		return
	}

	ctx := context.Background()
	db := postgres.New(cfg)

	users, err := loadUsers(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed users")
	}

	if err := seedUsers(ctx, db.Write, users); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed users")
	}

	if err := seedSchedules(ctx, db.Write); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed schedules")
	}

	log.Info().Int("users", len(users)).Msg("Seeding completed.")
}

// loadUsers reads the user CSV, from S3 when a bucket is configured and from
// the local seed file otherwise. Expected columns: user_id, password, role.
func loadUsers(ctx context.Context, cfg *config.Config) ([]seedUser, error) {
	var reader io.Reader

	if cfg.Seed.S3.Bucket != "" {
		otl := otel.New(cfg)

		payload, err := s3.New(cfg, otl).FetchObject(ctx, cfg.Seed.S3.Bucket, cfg.Seed.S3.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed object: %w", err)
		}

		reader = bytes.NewReader(payload)
	} else {
		file, err := os.Open(cfg.Seed.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		defer file.Close()

		reader = file
	}

	return parseUsers(reader)
}

func parseUsers(reader io.Reader) ([]seedUser, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed csv: %w", err)
	}

	users := make([]seedUser, 0, len(records))

	for i, record := range records {
		if i == 0 && record[0] == "user_id" {
			continue
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("seed csv row %d has %d columns, want 3", i+1, len(record))
		}

		hashed := record[1]
		if !password.IsHashed(hashed) {
			hashed, err = password.Hash(hashed)
			if err != nil {
				return nil, fmt.Errorf("failed to hash seed password: %w", err)
			}
		}

		users = append(users, seedUser{
			Handle:   record[0],
			Password: hashed,
			Role:     record[2],
		})
	}

	return users, nil
}

func seedUsers(ctx context.Context, db *sqlx.DB, users []seedUser) error {
	query := `
		INSERT INTO users (user_id, password, role, created_by, modified_by)
		VALUES (:user_id, :password, :role, :created_by, :modified_by)
		ON CONFLICT (user_id) DO NOTHING`

	for _, user := range users {
		args := map[string]any{
			"user_id":     user.Handle,
			"password":    user.Password,
			"role":        user.Role,
			"created_by":  seedActor,
			"modified_by": seedActor,
		}

		if _, err := db.NamedExecContext(ctx, query, args); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", user.Handle, err)
		}
	}

	return nil
}

// seedSchedules creates two demo schedules starting in the next two days so a
// fresh install has something for clients to reserve.
func seedSchedules(ctx context.Context, db *sqlx.DB) error {
	query := `
		INSERT INTO exam_schedules (name, start_time, end_time, created_by, modified_by)
		VALUES (:name, :start_time, :end_time, :created_by, :modified_by)
		ON CONFLICT (name) DO NOTHING`

	now := timezone.Now()

	schedules := []map[string]any{
		{
			"name":        "exam 1",
			"start_time":  now.Add(24 * time.Hour),
			"end_time":    now.Add(26 * time.Hour),
			"created_by":  seedActor,
			"modified_by": seedActor,
		},
		{
			"name":        "exam 2",
			"start_time":  now.Add(48 * time.Hour),
			"end_time":    now.Add(50 * time.Hour),
			"created_by":  seedActor,
			"modified_by": seedActor,
		},
	}

	for _, schedule := range schedules {
		if _, err := db.NamedExecContext(ctx, query, schedule); err != nil {
			return fmt.Errorf("failed to insert schedule %s: %w", schedule["name"], err)
		}
	}

	return nil
}
