package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/lock"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
)

// Installer downloads and unpacks driver releases.
type Installer struct {
	fetcher   Fetcher
	extractor *Extractor
	logger    logging.Logger
	newID     func() string
}

// NewInstaller creates an installer that downloads through fetcher.
func NewInstaller(fetcher Fetcher, logger logging.Logger) *Installer {
	return &Installer{
		fetcher:   fetcher,
		extractor: NewExtractor(),
		logger:    logging.OrNop(logger),
		newID:     uuid.NewString,
	}
}

// Install downloads rel into inst, replacing the previous driver and
// rewriting the version marker. The temporary archive may be left behind
// when extraction fails.
func (in *Installer) Install(ctx context.Context, rel *Release, inst Installation) (err error) {
	if rel == nil {
		return &InstallError{Stage: StageDownload, Err: errors.New("release is nil")}
	}

	l, err := lock.Acquire(inst.Dir)
	if err != nil {
		return &InstallError{Stage: StageLock, Err: err}
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = &InstallError{Stage: StageLock, Err: relErr}
		}
	}()

	in.logger.Info("downloading driver",
		"browser_version", rel.BrowserVersion.String(),
		"driver_version", rel.Version.String(),
		"url", rel.URL)

	body, err := in.fetcher.Fetch(ctx, rel.URL)
	if err != nil {
		return &InstallError{Stage: StageDownload, Err: err}
	}

	archivePath := filepath.Join(inst.Dir, fmt.Sprintf("driver-%s.zip", in.newID()))
	if err := os.WriteFile(archivePath, body, 0644); err != nil {
		return &InstallError{Stage: StageSave, Err: fmt.Errorf("write archive: %w", err)}
	}
	in.logger.Debug("saved driver archive", "path", archivePath, "bytes", len(body))

	extracted, err := in.extractor.ExtractZip(archivePath, inst.Dir)
	if err != nil {
		return &InstallError{Stage: StageExtract, Err: err}
	}

	if err := os.Remove(archivePath); err != nil {
		return &InstallError{Stage: StageCleanup, Err: fmt.Errorf("remove archive: %w", err)}
	}

	if err := placeBinary(inst, extracted); err != nil {
		return &InstallError{Stage: StageExtract, Err: err}
	}

	if !rel.Platform.IsWindows() {
		if err := SetExecutable(inst.BinaryPath); err != nil {
			return &InstallError{Stage: StageExtract, Err: err}
		}
	}

	if err := os.WriteFile(inst.VersionFile, []byte(rel.Version.String()), 0644); err != nil {
		return &InstallError{Stage: StageRecord, Err: fmt.Errorf("write version file: %w", err)}
	}

	in.logger.Info("driver installed", "path", inst.BinaryPath, "version", rel.Version.String())
	return nil
}

// placeBinary makes sure the driver ends up at inst.BinaryPath. Archives that
// nest the executable in a subdirectory get it moved up to the install dir.
func placeBinary(inst Installation, extracted []string) error {
	want := filepath.Base(inst.BinaryPath)
	for _, p := range extracted {
		if p == inst.BinaryPath {
			return nil
		}
	}
	for _, p := range extracted {
		if filepath.Base(p) == want {
			if err := os.Rename(p, inst.BinaryPath); err != nil {
				return fmt.Errorf("move %s into place: %w", want, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%s not found in archive", want)
}
