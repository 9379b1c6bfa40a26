package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhive-dev/studyhive/internal/config"
)

// Runner shells out to the MySQL client tools. Credentials travel via
// MYSQL_PWD rather than argv so they do not show up in the process list.
type Runner struct {
	host     string
	port     int
	user     string
	password string
	database string
	dir      string
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		host:     cfg.DBHost,
		port:     cfg.DBPort,
		user:     cfg.DBUser,
		password: cfg.DBPassword,
		database: cfg.DBName,
		dir:      cfg.BackupDir,
	}
}

// Dump runs mysqldump into a fresh file under the backup directory and
// returns its path and size.
func (r *Runner) Dump(ctx context.Context) (string, int64, error) {
	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return "", 0, err
	}

	filename := fmt.Sprintf("%s-%s.sql", time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(r.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, "mysqldump",
		"--host", r.host,
		"--port", fmt.Sprintf("%d", r.port),
		"--user", r.user,
		"--single-transaction",
		"--routines",
		r.database,
	)
	cmd.Env = append(os.Environ(), "MYSQL_PWD="+r.password)
	cmd.Stdout = out

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("mysqldump failed: %s", firstLine(stderr.String()))
	}

	info, err := out.Stat()
	if err != nil {
		return "", 0, err
	}

	return path, info.Size(), nil
}

// Restore pipes a completed dump back through the mysql client.
func (r *Runner) Restore(ctx context.Context, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("backup file is missing: %s", filepath.Base(path))
	}
	defer in.Close()

	cmd := exec.CommandContext(ctx, "mysql",
		"--host", r.host,
		"--port", fmt.Sprintf("%d", r.port),
		"--user", r.user,
		r.database,
	)
	cmd.Env = append(os.Environ(), "MYSQL_PWD="+r.password)
	cmd.Stdin = in

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysql restore failed: %s", firstLine(stderr.String()))
	}

	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	if s == "" {
		return "unknown error"
	}
	return s
}
