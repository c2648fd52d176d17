package mcdcli

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"

	"oss.terrastruct.com/util-go/xbrowser"
	"oss.terrastruct.com/util-go/xhttp"
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/mcdlib"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdsvg"
)

//go:embed static
var staticFS embed.FS

const (
	// settleDelay is how long the input must stay quiet after an event before it is
	// compiled. One save from an editor is often several events.
	settleDelay = time.Millisecond * 16
	// pollInterval catches changes whose events were lost, such as edits on network
	// filesystems.
	pollInterval = time.Second * 10
)

type watcherOpts struct {
	compileOpts  *mcdlib.CompileOptions
	renderOpts   mcdsvg.RenderOpts
	host         string
	port         string
	inputPath    string
	outputPath   string
	outputFormat exportExtension
}

// watcher recompiles the input whenever it changes on disk and serves the result as a
// live preview.
type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ms *xmain.State
	watcherOpts

	fw     *fsnotify.Watcher
	l      net.Listener
	static fs.FS
	hub    *previewHub
	dirty  chan struct{}

	closeOnce sync.Once
	errMu     sync.Mutex
	err       error
}

func newWatcher(ctx context.Context, ms *xmain.State, opts watcherOpts) (_ *watcher, err error) {
	ctx, cancel := context.WithCancel(ctx)
	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		ms:          ms,
		watcherOpts: opts,

		hub:   newPreviewHub(ms.Log),
		dirty: make(chan struct{}, 1),
	}
	defer func() {
		if err != nil {
			cancel()
		}
	}()

	w.static, err = fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	w.fw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// The directory is watched rather than the file: editors that save by writing a new
	// file and renaming it over the old one would otherwise drop the watch.
	err = w.fw.Add(filepath.Dir(w.inputPath))
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to watch %s: %w", ms.HumanPath(w.inputPath), err), w.fw.Close())
	}
	w.l, err = net.Listen("tcp", net.JoinHostPort(w.host, w.port))
	if err != nil {
		return nil, multierr.Append(err, w.fw.Close())
	}
	ms.Log.Success.Printf("listening on http://%v", w.l.Addr())
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchInput)
	w.goFunc(w.compileLoop)
	w.goFunc(w.serve)

	w.wg.Wait()
	w.close()
	return w.getErr()
}

func (w *watcher) close() {
	w.closeOnce.Do(func() {
		w.cancel()
		w.hub.close()
		err := multierr.Combine(w.fw.Close(), w.l.Close())
		if errors.Is(err, net.ErrClosed) {
			err = nil
		}
		w.setErr(err)
	})
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *watcher) getErr() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if errors.Is(w.err, context.Canceled) {
		return nil
	}
	return w.err
}

// goFunc runs fn until it returns. The first one to return stops the others.
func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()
		w.setErr(fn(w.ctx))
	}()
}

func (w *watcher) requestCompile() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

func (w *watcher) modTime() time.Time {
	fi, err := os.Stat(w.inputPath)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

func (w *watcher) watchInput(ctx context.Context) error {
	lastMod := w.modTime()
	w.ms.Log.Info.Printf("compiling %v...", w.ms.HumanPath(w.inputPath))
	w.requestCompile()

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	// settle is nil unless a change is waiting for the input to go quiet.
	var settle <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			if filepath.Clean(ev.Name) != w.inputPath {
				continue
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			switch {
			case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
				settle = time.After(settleDelay)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.ms.Log.Warn.Printf("%s was removed: waiting for it to come back", w.ms.HumanPath(w.inputPath))
			}
		case <-settle:
			settle = nil
			lastMod = w.modTime()
			w.ms.Log.Info.Printf("detected change in %s: recompiling...", w.ms.HumanPath(w.inputPath))
			w.requestCompile()
		case <-poll.C:
			if mt := w.modTime(); !mt.IsZero() && !mt.Equal(lastMod) {
				lastMod = mt
				w.ms.Log.Info.Printf("detected change in %s: recompiling...", w.ms.HumanPath(w.inputPath))
				w.requestCompile()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) compileLoop(ctx context.Context) error {
	opened := false
	for {
		select {
		case <-w.dirty:
		case <-ctx.Done():
			return ctx.Err()
		}

		res, err := compile(ctx, w.ms, w.compileOpts, w.renderOpts, w.inputPath, w.outputPath, w.outputFormat)
		if err != nil {
			w.ms.Log.Error.Printf("failed to compile %s: %v", w.ms.HumanPath(w.inputPath), err)
			w.hub.publish(newErrPreview(err))
		} else {
			w.hub.publish(newPreview(res))
		}

		if !opened {
			opened = true
			url := fmt.Sprintf("http://%s", w.l.Addr())
			err = xbrowser.Open(ctx, w.ms.Env, url)
			if err != nil {
				w.ms.Log.Warn.Printf("failed to open browser to %v: %v", url, err)
			}
		}
	}
}

func (w *watcher) serve(ctx context.Context) error {
	m := http.NewServeMux()
	m.HandleFunc("/", w.handleRoot)
	m.Handle("/static/", http.StripPrefix("/static", http.FileServer(http.FS(w.static))))
	m.Handle("/watch", xhttp.HandlerFuncAdapter{Log: w.ms.Log, Func: w.hub.serveWatch})
	m.Handle("/plan.json", xhttp.HandlerFuncAdapter{Log: w.ms.Log, Func: w.hub.servePlan})

	s := xhttp.NewServer(w.ms.Log.Warn, xhttp.Log(w.ms.Log, m))
	return xhttp.Serve(ctx, time.Second*30, s, w.l)
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.}}</title>
	<script src="/static/watch.js"></script>
	<link rel="stylesheet" href="/static/watch.css">
</head>
<body>
	<div id="mcd-status"></div>
	<div id="mcd-err" style="display: none"></div>
	<ul id="mcd-problems" style="display: none"></ul>
	<div id="mcd-svg-container"></div>
</body>
</html>
`))

func (w *watcher) handleRoot(hw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(hw, r)
		return
	}
	hw.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTmpl.Execute(hw, filepath.Base(w.inputPath))
	if err != nil {
		w.ms.Log.Warn.Printf("failed to write watch page: %v", err)
	}
}
