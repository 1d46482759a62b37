//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const homePage = `<html><head><title>Home</title></head><body>
<main data-focus-container="true" data-group-order="menu,rail-0">
  <a id="nav-home" data-focusable="true" data-group="menu">Home</a>
  <a id="nav-plan" data-focusable="true" data-group="menu" href="myplan.html">My Plan</a>
  <a id="card-1" data-focusable="true" data-group="rail-0" data-row="0" data-col="0" href="video-detail.html">Episode 1</a>
  <a id="card-2" data-focusable="true" data-group="rail-0" data-row="0" data-col="1">Episode 2</a>
</main></body></html>`

const detailPage = `<html><head><title>Episode 1</title></head><body>
<button id="play" data-focusable="true" data-primary="true">Play</button>
<button id="trailer" data-focusable="true">Trailer</button>
</body></html>`

// CreateTestWorkspace creates a temporary directory for pages and config
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WritePage writes an HTML page into the workspace
func (tf *TUITestFramework) WritePage(name, body string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// CreateSite writes the home and detail pages and returns the home page path
func (tf *TUITestFramework) CreateSite() (string, error) {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return "", err
	}
	if _, err := tf.WritePage("video-detail.html", detailPage); err != nil {
		return "", err
	}
	return tf.WritePage("home.html", homePage)
}
