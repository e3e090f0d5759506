// Package credstore keeps per-site login credentials in a small CSV keyed
// by normalized domain. Passwords are base64-encoded so the file isn't
// shoulder-surfable, but this is reversible encoding, not encryption;
// treat the file as plaintext when thinking about threats.
package credstore

import (
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

var header = []string{"domain", "username", "password", "created_date", "last_used"}

// compoundSuffixes are second-level labels that mean the registrable name
// needs three labels (example.co.uk, example.com.au). This is a small
// heuristic, not a public-suffix-list lookup; it covers the sites the
// apply agent actually hits.
var compoundSuffixes = map[string]bool{
	"co": true, "com": true, "net": true, "org": true, "edu": true, "gov": true,
}

type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// NormalizeDomain collapses any URL for a site to one credential key:
// https://jobs.example.com/apply and https://www.example.com/login both
// map to example.com.
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	if compoundSuffixes[labels[len(labels)-2]] {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

func encodePassword(p string) string {
	return base64.StdEncoding.EncodeToString([]byte(p))
}

func decodePassword(enc string) string {
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		// legacy rows may hold the raw value
		return enc
	}
	return string(b)
}

// Upsert stores credentials for the site at rawURL, overwriting username,
// password and last_used in place when the domain is already present.
func (s *Store) Upsert(rawURL, username, password string) error {
	domain := NormalizeDomain(rawURL)
	if domain == "" {
		return fmt.Errorf("no usable domain in %q", rawURL)
	}

	return s.withLock(func() error {
		rows, err := s.readRows()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		now := time.Now().UTC().Format(time.RFC3339)
		updated := false
		for _, row := range rows {
			if row[0] == domain {
				row[1] = username
				row[2] = encodePassword(password)
				row[4] = now
				updated = true
			}
		}
		if !updated {
			rows = append(rows, []string{domain, username, encodePassword(password), now, now})
		}

		log.Printf("[creds] %s credentials for %s", verb(updated), domain)
		return s.writeRows(rows)
	})
}

// Lookup returns the stored credentials for the site at rawURL. A hit
// refreshes last_used as a side effect. A miss returns ok=false without
// distinguishing "no file" from "no matching domain".
func (s *Store) Lookup(rawURL string) (username, password string, ok bool) {
	domain := NormalizeDomain(rawURL)
	if domain == "" {
		return "", "", false
	}

	err := s.withLock(func() error {
		rows, err := s.readRows()
		if err != nil {
			return err
		}

		for _, row := range rows {
			if row[0] != domain {
				continue
			}
			username = row[1]
			password = decodePassword(row[2])
			ok = true
			row[4] = time.Now().UTC().Format(time.RFC3339)
			return s.writeRows(rows)
		}
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[creds] lookup %s: %v", domain, err)
	}
	return username, password, ok
}

func (s *Store) withLock(fn func() error) error {
	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock credentials file: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

func (s *Store) readRows() ([][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows [][]string
	for _, rec := range records[1:] {
		// pad short rows so indexing stays safe
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (s *Store) writeRows(rows [][]string) error {
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func verb(updated bool) string {
	if updated {
		return "updated"
	}
	return "stored"
}
