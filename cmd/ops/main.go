package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"taskledger/internal/config"
	"taskledger/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "drill":
		err = cmdDrill(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// defaultDataDir is the directory holding the configured store file.
func defaultDataDir() string {
	cfg, err := config.LoadOptional(os.Getenv("TASKLEDGER_CONFIG"))
	if err != nil {
		return "data"
	}
	return filepath.Dir(cfg.Store.Path)
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", defaultDataDir(), "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "taskledger-"+ts+".tar.gz")
	}

	m, err := ops.Backup(*dataDir, *out)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d files, %d bytes)\n", *out, len(m.Files), m.Bytes)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.Restore(*archive, *target)
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive (.tar.gz)")
	name := fs.String("file", "tasks_database.json", "task file name inside the archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}

	tasks, err := ops.InspectTasks(*archive, *name)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d tasks\n", *name, len(tasks))
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", defaultDataDir(), "path to data directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "taskledger-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "taskledger-drill-restore-"+ts)

	m, err := ops.Backup(*dataDir, archive)
	if err != nil {
		return err
	}
	if err := ops.Restore(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := filesDigest(*dataDir, m.Files)
	if err != nil {
		return err
	}
	restoreDigest, err := filesDigest(restoreDir, m.Files)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

// filesDigest hashes the named files under root in sorted order.
func filesDigest(root string, files []string) (string, error) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, rel := range sorted {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  taskledger-ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  taskledger-ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  taskledger-ops verify  --archive backups/backup.tar.gz --file tasks_database.json")
	fmt.Println("  taskledger-ops drill   --data-dir data --work-dir /tmp")
}
