// Command yearbook serves a site of Markdown pages and keeps a yearly archive of its dated posts.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/ancientlore/yearbook/virtual"
	"github.com/ancientlore/yearbook/web"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
)

func main() {
	var (
		fFolder        = flag.String("folder", ".", "Root folder of the site.")
		fAddr          = flag.String("addr", ":8080", "Server address.")
		fCacheSize     = flag.Int64("cachesize", 10*1024*1024, "Size of the page cache in bytes.")
		fCacheDuration = flag.Duration("cacheduration", 10*time.Second, "How long cached pages live.")
		fWatch         = flag.Bool("watch", false, "Rebuild the site when files change.")
		fPrint         = flag.Bool("print", false, "Build the site, print the yearly archive as TOML, and exit.")
	)
	flag.Parse()
	flagenv.Prefix = "YEARBOOK_"
	flagenv.Parse()

	// a failed build is logged here and nowhere else
	vfs, err := virtual.New(os.DirFS(*fFolder))
	if err != nil {
		log.Printf("Cannot build site in %q: %s", *fFolder, err)
		os.Exit(1)
	}

	if *fPrint {
		err = printArchive(os.Stdout, vfs.Site().Yearly)
		if err != nil {
			log.Printf("Cannot print archive: %s", err)
			os.Exit(2)
		}
		return
	}

	cfg, err := vfs.Config()
	if err != nil {
		log.Printf("Cannot read configuration: %s", err)
		os.Exit(3)
	}
	if cfg == nil {
		cfg = &virtual.Config{}
	}

	if *fWatch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err = watch(ctx, *fFolder, vfs, time.Second)
		if err != nil {
			log.Printf("Cannot watch %q: %s", *fFolder, err)
			os.Exit(4)
		}
	}

	// Setup groupcache (in this case with no peers)
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
	cachedFileSystem := cachefs.New(vfs, &cachefs.Config{GroupName: "yearbook", SizeInBytes: *fCacheSize, Duration: *fCacheDuration})

	handler := web.HeaderHandler(
		web.ExpiresHandler(
			gziphandler.GzipHandler(
				web.ErrorHandler(
					http.FileServer(http.FS(cachedFileSystem)),
					cachedFileSystem,
				),
			),
			time.Duration(cfg.Expires),
			time.Duration(cfg.StaticExpires),
			vfs,
		),
		cfg.Headers)

	srv := http.Server{
		Addr:              *fAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	log.Printf("Listening on %s", *fAddr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
		os.Exit(5)
	}
	log.Print("Goodbye.")
}
