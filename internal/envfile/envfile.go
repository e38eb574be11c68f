// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// OutcomeCreated means the target file did not exist and was written.
	OutcomeCreated Outcome = "created"
	// OutcomeSkipped means the target file already existed and was left untouched.
	OutcomeSkipped Outcome = "skipped"

	// DefaultFileName is the name of the generated dotenv file.
	DefaultFileName = ".env"
	// DefaultSourceDir is the directory the dotenv file lives in, resolved
	// relative to the installation root.
	DefaultSourceDir = "src"
)

var (
	// ErrInvalidKey is the sentinel error wrapped by InvalidKeyError.
	ErrInvalidKey = errors.New("invalid env file key")

	// ErrEmptySchema is returned when EnsureFile is called with a schema
	// containing no keys.
	ErrEmptySchema = errors.New("env file schema has no keys")
)

type (
	// Key is a single env file key. A valid key is non-empty and contains
	// neither '=' nor a newline, so that each rendered line parses back into
	// exactly one pair.
	Key string

	// InvalidKeyError is returned when a Key cannot be rendered as a
	// well-formed dotenv line. It wraps ErrInvalidKey for errors.Is().
	InvalidKeyError struct {
		Value Key
	}

	// Schema is an ordered list of keys. Rendering order follows schema
	// order, and every schema key appears in the output exactly once.
	Schema []Key

	// Source resolves a key to its value. A false second return means the
	// key is absent; absent keys render as empty values rather than errors.
	Source interface {
		Lookup(key string) (string, bool)
	}

	// MapSource is a Source backed by an explicit map.
	MapSource map[string]string

	// Outcome describes what EnsureFile did with the target path.
	Outcome string

	// Result reports the outcome of an EnsureFile call.
	Result struct {
		// Path is the target path, as given by the caller.
		Path string
		// Outcome is OutcomeCreated or OutcomeSkipped.
		Outcome Outcome
	}
)

// Error returns the message for InvalidKeyError.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid env file key %q: must be non-empty without '=' or newline", string(e.Value))
}

// Unwrap returns ErrInvalidKey for errors.Is() compatibility.
func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKey
}

// Validate checks that the key renders as a well-formed dotenv line.
func (k Key) Validate() error {
	if k == "" || strings.ContainsAny(string(k), "=\n") {
		return &InvalidKeyError{Value: k}
	}
	return nil
}

// Validate checks every key in the schema.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchema
	}
	for _, k := range s {
		if err := k.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OSSource reads values from the process environment. It is wired in only at
// the CLI edge; library code and tests pass an explicit MapSource instead.
func OSSource() Source {
	return osSource{}
}

type osSource struct{}

func (osSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// BackendSchema returns the fixed key set of the backend's dotenv file, in
// its fixed order. The list is intentionally frozen; new configuration goes
// through the deployment pipeline, not through this bootstrap file.
func BackendSchema() Schema {
	return Schema{
		"PRIVATE_KEY_TEST",
		"PUBLIC_KEY_TEST",
		"MAIL_GUN_URL",
		"MAIL_GUN_API_KEY",
		"CELERY_BROKER_URL",
		"CELERY_BACKEND",
		"SENDER_CREDS",
	}
}

// Render produces the dotenv file content: one KEY=VALUE line per schema key
// in schema order, absent keys as KEY=, values verbatim with no quoting, and
// a trailing blank line after the last pair.
func Render(schema Schema, source Source) string {
	var sb strings.Builder
	for _, k := range schema {
		v, _ := source.Lookup(string(k))
		fmt.Fprintf(&sb, "%s=%s\n", string(k), v)
	}
	sb.WriteString("\n")
	return sb.String()
}

// EnsureFile writes the rendered schema to path unless a file already exists
// there. Creation uses O_EXCL, so the exists check and the write are a single
// atomic step and concurrent callers cannot clobber each other: exactly one
// observes OutcomeCreated and the rest observe OutcomeSkipped.
//
// A pre-existing file is not an error. Create and write failures are; they
// return wrapped filesystem errors and leave no partial file behind when the
// open itself failed.
func EnsureFile(path string, schema Schema, source Source) (*Result, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return &Result{Path: path, Outcome: OutcomeSkipped}, nil
		}
		return nil, fmt.Errorf("create env file %s: %w", path, err)
	}

	content := Render(schema, source)

	if _, err := f.WriteString(content); err != nil {
		f.Close() //nolint:errcheck // write error takes precedence
		return nil, fmt.Errorf("write env file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close env file %s: %w", path, err)
	}

	return &Result{Path: path, Outcome: OutcomeCreated}, nil
}

// Read parses an existing env file back into a key-value map.
func Read(path string) (map[string]string, error) {
	pairs, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return pairs, nil
}

// DefaultPath resolves the conventional target path: the ".env" file inside
// the "src" directory that sits next to the binary's containing directory.
// A binary at <root>/bin/socforge targets <root>/src/.env, independent of the
// caller's working directory.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	root := filepath.Dir(filepath.Dir(exe))
	return filepath.Join(root, DefaultSourceDir, DefaultFileName), nil
}
