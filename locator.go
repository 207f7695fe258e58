package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// Locator schemes. Archive entries are encoded as <kind>:///abs/archive#entry.
const (
	schemeFile  = "file"
	schemeHTTP  = "http"
	schemeHTTPS = "https"
	schemeZip   = "zip"
	schemeRar   = "rar"
	scheme7z    = "7z"
)

func isArchiveExt(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func isRemoteArg(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isRemote(u *url.URL) bool {
	return u.Scheme == schemeHTTP || u.Scheme == schemeHTTPS
}

// fileLocator returns the locator for a file on disk
func fileLocator(p string) (*url.URL, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: schemeFile, Path: filepath.ToSlash(abs)}, nil
}

// entryLocator returns the locator for an entry inside an archive
func entryLocator(archivePath, entry string) (*url.URL, error) {
	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return nil, err
	}
	kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(abs)), ".")
	return &url.URL{Scheme: kind, Path: filepath.ToSlash(abs), Fragment: entry}, nil
}

// locatorKey is the cache and sort key of a locator
func locatorKey(u *url.URL) string {
	return u.String()
}

// displayName is the short human-readable name of a locator
func displayName(u *url.URL) string {
	switch u.Scheme {
	case schemeZip, schemeRar, scheme7z:
		return path.Base(u.Path) + ":" + u.Fragment
	case schemeHTTP, schemeHTTPS:
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
		return u.Host
	default:
		return path.Base(u.Path)
	}
}

// displayPath is the value printed for kept pages
func displayPath(u *url.URL) string {
	switch u.Scheme {
	case schemeFile:
		return filepath.FromSlash(u.Path)
	case schemeZip, schemeRar, scheme7z:
		return filepath.FromSlash(u.Path) + ":" + u.Fragment
	default:
		return u.String()
	}
}

// File collection functions

func listZip(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			entries = append(entries, f.Name)
		}
	}
	return entries, nil
}

func listRar(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var entries []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			entries = append(entries, header.Name)
		}
	}
	return entries, nil
}

func list7z(archivePath string) ([]string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			entries = append(entries, f.Name)
		}
	}
	return entries, nil
}

func processArchive(archivePath string) ([]*url.URL, error) {
	var entries []string
	var err error

	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		entries, err = listZip(archivePath)
	case ".rar":
		entries, err = listRar(archivePath)
	case ".7z":
		entries, err = list7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}

	locators := make([]*url.URL, 0, len(entries))
	for _, entry := range entries {
		u, err := entryLocator(archivePath, entry)
		if err != nil {
			return nil, err
		}
		locators = append(locators, u)
	}
	return locators, nil
}

// collectLocators turns command line arguments into page locators. Directories
// are walked; archives are expanded; URLs are passed through. Each argument's
// results are sorted with strategy, and arguments keep their order.
func collectLocators(args []string, strategy SortStrategy) ([]*url.URL, error) {
	var list []*url.URL
	for _, arg := range args {
		if isRemoteArg(arg) {
			u, err := url.Parse(arg)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", arg, err)
			}
			list = append(list, u)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			found, err := collectFile(arg)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", arg, err)
				continue
			}
			list = append(list, strategy.Sort(found)...)
			continue
		}

		var dirLocators []*url.URL
		err = filepath.Walk(arg, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			found, err := collectFile(p)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", p, err)
				return nil
			}
			dirLocators = append(dirLocators, found...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, strategy.Sort(dirLocators)...)
	}
	return list, nil
}

func collectFile(p string) ([]*url.URL, error) {
	switch {
	case isSupportedExt(p):
		u, err := fileLocator(p)
		if err != nil {
			return nil, err
		}
		return []*url.URL{u}, nil
	case isArchiveExt(p):
		return processArchive(p)
	default:
		return nil, nil
	}
}
