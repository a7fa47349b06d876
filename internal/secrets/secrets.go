// Package secrets resolves account passwords and maintains the companion
// .env file that lives beside the configuration file. Passwords are never
// stored in the config document itself; each account maps to one
// RNOE_ACCOUNT_<ID>_PASSWORD entry, read from the process environment
// first and the .env file second.
package secrets

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/readnoevil/rnoe/internal/errors"
)

const envVarPrefix = "RNOE_ACCOUNT_"
const envVarSuffix = "_PASSWORD"

// Placeholder is written for accounts that have no stored value yet.
const Placeholder = "your-app-password-here"

var envFileHeader = []string{
	"# read-no-evil credentials",
	"# !! Keep this file secret — do not commit to version control !!",
}

// EnvVar returns the environment variable name carrying the password for
// an account id.
func EnvVar(accountID string) string {
	name := strings.ToUpper(strings.ReplaceAll(accountID, "-", "_"))
	return envVarPrefix + name + envVarSuffix
}

// EnvFilePath returns the path of the .env file beside the config file.
func EnvFilePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), ".env")
}

// LookupPassword resolves the password for an account: the process
// environment wins, then the .env file beside the config. A placeholder
// value counts as missing.
func LookupPassword(configPath, accountID string) (string, error) {
	key := EnvVar(accountID)

	if v := os.Getenv(key); v != "" && v != Placeholder {
		return v, nil
	}

	if v, ok := readEnvFile(EnvFilePath(configPath))[key]; ok && v != "" && v != Placeholder {
		return v, nil
	}

	return "", errors.NewValidationError(
		errors.ErrCodeMissingPassword,
		"password not found: set "+key+" or add it to "+EnvFilePath(configPath),
	)
}

// WriteEnvFile writes one placeholder entry per account id, preserving
// values already present in the file. The write is atomic and the file
// is restricted to the owner.
func WriteEnvFile(configPath string, accountIDs []string) error {
	envPath := EnvFilePath(configPath)
	existing := readEnvFile(envPath)

	lines := append([]string{}, envFileHeader...)
	for _, id := range accountIDs {
		key := EnvVar(id)
		val, ok := existing[key]
		if !ok || val == "" {
			val = Placeholder
		}
		lines = append(lines, key+"="+val)
	}

	parent := filepath.Dir(envPath)
	tmp, err := os.CreateTemp(parent, ".env-*.tmp")
	if err != nil {
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot create temporary file in "+parent,
			err,
		)
	}
	tmpPath := tmp.Name()

	_, werr := tmp.WriteString(strings.Join(lines, "\n") + "\n")
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmpPath, 0o600)
	}
	if werr != nil {
		os.Remove(tmpPath)
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot write env file "+envPath,
			werr,
		)
	}

	if err := os.Rename(tmpPath, envPath); err != nil {
		os.Remove(tmpPath)
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot replace env file "+envPath,
			err,
		)
	}
	return nil
}

// readEnvFile parses KEY=value lines, skipping comments and blanks.
// Surrounding single or double quotes on values are stripped.
func readEnvFile(path string) map[string]string {
	vars := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return vars
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(val), `"'`)
	}
	return vars
}
