package virtual

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

const testSite = "testdata/site"

func TestFS(t *testing.T) {
	const count = 10
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			numEntries := 0
			err := fs.WalkDir(fileSys, ".", func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					t.Error(err)
					return nil
				}
				numEntries++
				if strings.HasSuffix(path, ".md") || containsSpecialFile(path) || path == "site.cfg" {
					t.Errorf("%q should be hidden", path)
				}
				if !d.IsDir() {
					b, err := fs.ReadFile(fileSys, path)
					if err != nil {
						t.Errorf("Cannot read %q: %v", path, err)
						return nil
					}
					if len(b) == 0 {
						t.Errorf("File %q has no data", path)
					}
				}
				fi, err := fs.Stat(fileSys, path)
				if err != nil {
					t.Errorf("Cannot stat %q: %v", path, err)
					return nil
				}
				if path != "." && !strings.HasSuffix(path, fi.Name()) {
					t.Errorf("%q should be part of %q", fi.Name(), path)
				}
				if !fi.IsDir() && fi.Size() == 0 {
					t.Errorf("Expected %q to have non-zero size", path)
				}
				if fi.ModTime().IsZero() {
					t.Errorf("Expected %q to have non-zero mod time", path)
				}
				return nil
			})
			if err != nil {
				t.Error(err)
			}
			if numEntries < 10 {
				t.Errorf("saw only %d entries", numEntries)
			}
		}()
	}
	wg.Wait()
}

func TestReadFile(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "index.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<title>Home</title>") {
		t.Errorf("Expected rendered title, got %s", b)
	}
}

func TestReadDir(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := fs.ReadDir(fileSys, ".")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		inf, err := entry.Info()
		if err != nil {
			t.Error(err)
			continue
		}
		t.Logf("%s %10d  %s  %s", inf.Mode(), inf.Size(), inf.ModTime().Format(time.UnixDate), inf.Name())
		names = append(names, entry.Name())
	}
	want := "404.html archive.html en fr index.html old.html photos sitemap.txt"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("Expected %q but got %q", want, got)
	}
}

func TestOpenReadDir(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	f, err := fileSys.Open("photos")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			t.Error(err)
		}
	}()

	rdf, ok := f.(fs.ReadDirFile)
	if !ok {
		t.Fatal("Not a directory")
	}
	entries, err := rdf.ReadDir(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name() != "dot.gif" || entries[1].Name() != "dot.html" {
		t.Errorf("Unexpected photo entries: %v", entries)
	}

	b, err := fs.ReadFile(fileSys, "photos/dot.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `<img src="photos/dot.gif"`) {
		t.Errorf("Expected image page, got %s", b)
	}
}

func TestHttpRead(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	hfs := http.FS(fileSys)

	f, err := hfs.Open("/en/hello.html")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			t.Error(err)
		}
	}()

	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Hello, world.") {
		t.Errorf("Expected rendered markdown, got %s", b)
	}
	fi, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != int64(len(b)) {
		t.Errorf("Size %d does not match content length %d", fi.Size(), len(b))
	}
}

func TestReadDirLoop(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}

	f, err := fileSys.Open("en")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rdf, ok := f.(fs.ReadDirFile)
	if !ok {
		t.Fatal("en is not a ReadDirFile")
	}

	total := 0
	for {
		dirs, err := rdf.ReadDir(2)
		if errors.Is(err, io.EOF) {
			if len(dirs) != 0 {
				t.Errorf("Expected empty directory at EOF")
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if len(dirs) == 0 || len(dirs) > 2 {
			t.Fatalf("Returned %d entries", len(dirs))
		}
		total += len(dirs)
	}
	if total != 3 {
		t.Errorf("Expected 3 entries, got %d", total)
	}
}

func TestHiddenFiles(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{".hidden", "site.cfg", "template", "../site.cfg"} {
		_, err := fileSys.Open(name)
		if err == nil {
			t.Errorf("Expected %q to be hidden", name)
		}
	}
	if _, err := fileSys.Open("missing.html"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not exist, got %v", err)
	}
}

func TestRedirect(t *testing.T) {
	fileSys, err := New(os.DirFS(testSite))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "old.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `content="0; url=/archive.html"`) {
		t.Errorf("Expected meta refresh, got %s", b)
	}
}
