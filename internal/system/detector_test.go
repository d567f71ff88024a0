package system

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/melih-ucgun/yurt/internal/category"
)

// mapFS serves absolute paths from an in-memory tree.
type mapFS struct {
	files fstest.MapFS
}

func newMapFS(files map[string]string) *mapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name[1:]] = &fstest.MapFile{Data: []byte(content)}
	}
	return &mapFS{files: m}
}

func (m *mapFS) ReadFile(name string) ([]byte, error) { return fs.ReadFile(m.files, name[1:]) }
func (m *mapFS) Stat(name string) (fs.FileInfo, error) { return fs.Stat(m.files, name[1:]) }

type onPath map[string]bool

func (o onPath) LookPath(name string) bool { return o[name] }

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		files     map[string]string
		path      onPath
		want      []category.Category
		manager   string
		aurHelper string
	}{
		{
			name: "cachyos with paru",
			goos: "linux",
			files: map[string]string{
				"/etc/os-release": "NAME=\"CachyOS Linux\"\nID=cachyos\nID_LIKE=arch\n",
				"/proc/1/comm":    "systemd\n",
				"/proc/version":   "Linux version 6.9.1-cachyos",
			},
			path:      onPath{"paru": true, "yay": true},
			want:      []category.Category{Arch, Linux, Systemd},
			manager:   "pacman",
			aurHelper: "paru",
		},
		{
			name: "ubuntu under wsl",
			goos: "linux",
			files: map[string]string{
				"/etc/os-release": "ID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"24.04\"\n",
				"/proc/version":   "Linux version 5.15.153.1-microsoft-standard-WSL2",
			},
			path:    onPath{},
			want:    []category.Category{Debian, Linux, WSL},
			manager: "apt",
		},
		{
			name:    "fedora",
			goos:    "linux",
			files:   map[string]string{"/etc/os-release": "ID=fedora\n", "/run/systemd/system/x": ""},
			path:    onPath{},
			want:    []category.Category{Fedora, Linux, Systemd},
			manager: "dnf",
		},
		{
			name:    "macos",
			goos:    "darwin",
			files:   map[string]string{},
			want:    []category.Category{MacOS},
			manager: "brew",
		},
		{
			name:    "windows",
			goos:    "windows",
			files:   map[string]string{},
			want:    []category.Category{Windows},
			manager: "winget",
		},
		{
			name:    "unknown linux falls back to PATH",
			goos:    "linux",
			files:   map[string]string{"/etc/os-release": "ID=gentoo\n"},
			path:    onPath{"apt-get": true},
			want:    []category.Category{Linux},
			manager: "apt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := detect(tt.goos, newMapFS(tt.files), tt.path)

			assert.Equal(t, tt.want, p.DetectedCategories())
			assert.Equal(t, tt.manager, p.PackageManager())
			assert.Equal(t, tt.aurHelper, p.AURHelper())
			assert.Equal(t, tt.goos == "windows", p.IsWindows())
		})
	}
}

func TestMustExclude(t *testing.T) {
	p := detect("linux", newMapFS(map[string]string{"/etc/os-release": "ID=arch\n"}), onPath{})

	assert.True(t, p.MustExclude(Windows))
	assert.True(t, p.MustExclude(Debian))
	assert.True(t, p.MustExclude(Systemd), "no init detected")
	assert.False(t, p.MustExclude(Arch))
	assert.False(t, p.MustExclude(Linux))
	assert.False(t, p.MustExclude("desktop"), "not a platform category")
}
