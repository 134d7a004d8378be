package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

type fakeStore struct {
	values map[string]string
	reads  []string
}

func (f *fakeStore) Read(ctx context.Context, vendorKey string) (string, bool) {
	f.reads = append(f.reads, vendorKey)
	v, ok := f.values[vendorKey]
	return v, ok
}

type fakeProbe struct {
	out   string
	ok    bool
	calls [][]string
}

func (f *fakeProbe) Query(ctx context.Context, argv []string) (string, bool) {
	f.calls = append(f.calls, argv)
	return f.out, f.ok
}

type fakeRunner struct {
	res *command.Result
	err error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*command.Result, error) {
	return f.res, f.err
}

func TestDetector_Windows(t *testing.T) {
	store := &fakeStore{values: map[string]string{`Microsoft\Edge`: "98.0.1108.56"}}
	probe := &fakeProbe{}
	d := NewDetector(store, probe)

	det := d.Detect(context.Background(), Edge, platform.Win32)
	require.NoError(t, det.Err)
	assert.Equal(t, Version("98.0.1108.56"), det.Version)
	assert.Equal(t, SourceRegistry, det.Source)
	assert.Equal(t, Edge, det.Target)
	assert.Empty(t, probe.calls, "registry platforms never run a process")

	det = d.Detect(context.Background(), Chrome, platform.Win32)
	assert.True(t, det.NotInstalled())
	assert.ErrorIs(t, det.Err, ErrVersionNotFound)
	assert.Contains(t, det.Err.Error(), `SOFTWARE\Google\Chrome\BLBeacon`)
	assert.Equal(t, []string{`Microsoft\Edge`, `Google\Chrome`}, store.reads)
}

func TestDetector_Process(t *testing.T) {
	tests := []struct {
		name     string
		id       platform.ID
		target   Target
		out      string
		ok       bool
		want     Version
		wantErr  error
		wantArgv []string
	}{
		{
			name:     "linux_chrome",
			id:       platform.Linux64,
			target:   Chrome,
			out:      "Google Chrome 114.0.5735.90",
			ok:       true,
			want:     "114.0.5735.90",
			wantArgv: []string{"google-chrome", "--version"},
		},
		{
			name:     "mac_edge",
			id:       platform.Mac64,
			target:   Edge,
			out:      "Microsoft Edge 98.0.1108.56",
			ok:       true,
			want:     "98.0.1108.56",
			wantArgv: []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge", "--version"},
		},
		{
			name:     "probe_failed",
			id:       platform.Linux64,
			target:   Edge,
			ok:       false,
			want:     SentinelVersion,
			wantErr:  ErrVersionNotFound,
			wantArgv: []string{"microsoft-edge", "--version"},
		},
		{
			name:     "no_match",
			id:       platform.Linux64,
			target:   Chrome,
			out:      "Google Chrome (dev build)",
			ok:       true,
			want:     SentinelVersion,
			wantErr:  ErrNoVersionMatch,
			wantArgv: []string{"google-chrome", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := &fakeProbe{out: tt.out, ok: tt.ok}
			d := NewDetector(&fakeStore{}, probe)

			det := d.Detect(context.Background(), tt.target, tt.id)
			assert.Equal(t, tt.want, det.Version)
			if tt.wantErr != nil {
				assert.ErrorIs(t, det.Err, tt.wantErr)
				assert.True(t, det.NotInstalled())
			} else {
				assert.NoError(t, det.Err)
			}
			require.Len(t, probe.calls, 1)
			assert.Equal(t, tt.wantArgv, probe.calls[0])
		})
	}
}

func TestDetector_CommandOverride(t *testing.T) {
	probe := &fakeProbe{out: "Chromium 120.0.6099.109 built on Debian", ok: true}
	d := NewDetector(nil, probe, WithCommands(map[Target][]string{
		Chrome: {"chromium", "--version"},
	}))

	det := d.Detect(context.Background(), Chrome, platform.Linux64)
	require.NoError(t, det.Err)
	assert.Equal(t, Version("120.0.6099.109"), det.Version)
	assert.Equal(t, []string{"chromium", "--version"}, probe.calls[0])
}

func TestDetector_CommandProbeFailureIsSentinel(t *testing.T) {
	runErr := &command.Error{Command: "google-chrome --version", ExitCode: 127, Err: errors.New("exit status 127")}
	d := NewSystemDetector(&fakeRunner{res: &command.Result{ExitCode: 127}, err: runErr})

	det := d.Detect(context.Background(), Chrome, platform.Linux64)
	assert.True(t, det.NotInstalled())
	assert.ErrorIs(t, det.Err, ErrVersionNotFound)

	var cmdErr *command.Error
	require.True(t, errors.As(det.Err, &cmdErr))
	assert.Equal(t, 127, cmdErr.ExitCode)
}

func TestDetector_NilStoreOnWindows(t *testing.T) {
	d := NewDetector(nil, nil)
	det := d.Detect(context.Background(), Chrome, platform.Win32)
	assert.True(t, det.NotInstalled())
	assert.ErrorIs(t, det.Err, ErrNoVersionSource)
}

func TestCommandProbe(t *testing.T) {
	p := NewCommandProbe(&fakeRunner{res: &command.Result{Stdout: "  Google Chrome 114.0.5735.90 \n"}})
	out, ok := p.Query(context.Background(), []string{"google-chrome", "--version"})
	assert.True(t, ok)
	assert.Equal(t, "Google Chrome 114.0.5735.90", out)

	_, ok = p.Query(context.Background(), nil)
	assert.False(t, ok)

	p = NewCommandProbe(&fakeRunner{res: &command.Result{Stdout: "   "}})
	_, ok = p.Query(context.Background(), []string{"x"})
	assert.False(t, ok)
}

func TestVersionCommand_Copy(t *testing.T) {
	argv := VersionCommand(platform.Linux64, Chrome)
	argv[0] = "mutated"
	assert.Equal(t, "google-chrome", VersionCommand(platform.Linux64, Chrome)[0])
	assert.Nil(t, VersionCommand(platform.Win32, Chrome))
}
