package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf("failed to parse database config: %w", err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf("failed to create connection pool: %w", err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf("failed to ping database: %w", err)
}

func errFailedCreateStudio(err error) error {
	return fmt.Errorf("failed to create studio: %w", err)
}

func errFailedGetStudio(err error) error {
	return fmt.Errorf("failed to get studio: %w", err)
}

func errFailedListStudios(err error) error {
	return fmt.Errorf("failed to list studios: %w", err)
}

func errFailedScanStudio(err error) error {
	return fmt.Errorf("failed to scan studio: %w", err)
}

func errFailedUpdateStudio(err error) error {
	return fmt.Errorf("failed to update studio: %w", err)
}

func errFailedGetAdmin(err error) error {
	return fmt.Errorf("failed to get master admin: %w", err)
}

func errFailedCreateClient(err error) error {
	return fmt.Errorf("failed to create client: %w", err)
}

func errFailedGetClient(err error) error {
	return fmt.Errorf("failed to get client: %w", err)
}

func errFailedListClients(err error) error {
	return fmt.Errorf("failed to list clients: %w", err)
}

func errFailedScanClient(err error) error {
	return fmt.Errorf("failed to scan client: %w", err)
}

func errFailedUpdateClient(err error) error {
	return fmt.Errorf("failed to update client: %w", err)
}

func errFailedDeleteClient(err error) error {
	return fmt.Errorf("failed to delete client: %w", err)
}

func errFailedCreateProject(err error) error {
	return fmt.Errorf("failed to create project: %w", err)
}

func errFailedGetProject(err error) error {
	return fmt.Errorf("failed to get project: %w", err)
}

func errFailedListProjects(err error) error {
	return fmt.Errorf("failed to list projects: %w", err)
}

func errFailedScanProject(err error) error {
	return fmt.Errorf("failed to scan project: %w", err)
}

func errFailedUpdateProject(err error) error {
	return fmt.Errorf("failed to update project: %w", err)
}

func errFailedDeleteProject(err error) error {
	return fmt.Errorf("failed to delete project: %w", err)
}

func errFailedSeedPalette(err error) error {
	return fmt.Errorf("failed to seed tag palette: %w", err)
}

func errFailedListTags(err error) error {
	return fmt.Errorf("failed to list tags: %w", err)
}

func errFailedDeleteTag(err error) error {
	return fmt.Errorf("failed to delete tag: %w", err)
}

func errFailedAdoptTags(err error) error {
	return fmt.Errorf("failed to adopt tags: %w", err)
}
