package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultFile = ".env"

// Load читает флаги процесса и подгружает env-файл, если он есть.
// Уже выставленные переменные окружения не перетираются.
func Load() error {
	return LoadArgs(flag.CommandLine, os.Args[1:])
}

// LoadArgs то же самое для произвольного набора флагов.
// -port перекрывает PORT, -env-file меняет путь к файлу.
func LoadArgs(flags *flag.FlagSet, args []string) error {
	var (
		portFlag string
		envFile  string
	)
	flags.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flags.StringVar(&envFile, "env-file", defaultFile, "Path to env file")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if err := LoadFile(envFile); err != nil {
		return err
	}

	if portFlag != "" {
		if err := os.Setenv("PORT", portFlag); err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}

// LoadFile подгружает файл; отсутствие файла не ошибка.
func LoadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
