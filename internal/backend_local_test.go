package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func TestLocalBackend_PutGet(t *testing.T) {
	b := NewLocalBackend(t.TempDir())

	key := "results/2025-07-07/210032/mentions.json"
	data := []byte(`{"hello":"world"}`)
	if err := b.Put(key, data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := b.Get(key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get() = %s, want %s", got, data)
	}
}

func TestLocalBackend_GetNotFound(t *testing.T) {
	b := NewLocalBackend(t.TempDir())
	_, err := b.Get("results/missing")
	if !IsNotFound(err) {
		t.Errorf("Get() error = %v, want NotFoundError", err)
	}
}

func TestLocalBackend_List(t *testing.T) {
	b := NewLocalBackend(t.TempDir())
	keys := []string{
		"results/2025-07-07/210032/mentions.json",
		"results/2025-07-07/210032/mentions.csv",
		"results/2025-07-08/090000/mentions.json",
		"analysis/2025-07-08/090000/summary_report.json",
	}
	for _, key := range keys {
		if err := b.Put(key, []byte("x")); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}

	got, err := b.List("results/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	sort.Strings(got)
	want := []string{
		"results/2025-07-07/210032/mentions.csv",
		"results/2025-07-07/210032/mentions.json",
		"results/2025-07-08/090000/mentions.json",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestLocalBackend_ListMissingPrefix(t *testing.T) {
	b := NewLocalBackend(t.TempDir())
	got, err := b.List("results/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestLocalBackend_ListDirs(t *testing.T) {
	b := NewLocalBackend(t.TempDir())
	for _, key := range []string{
		"results/2025-07-07/210032/mentions.json",
		"results/2025-07-07/230000/mentions.json",
		"results/2025-07-08/090000/mentions.json",
		"results/stray-file",
	} {
		if err := b.Put(key, []byte("x")); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}

	dates, err := b.ListDirs("results/")
	if err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}
	sort.Strings(dates)
	wantDates := []string{"results/2025-07-07/", "results/2025-07-08/"}
	if !reflect.DeepEqual(dates, wantDates) {
		t.Errorf("ListDirs(results/) = %v, want %v", dates, wantDates)
	}

	times, err := b.ListDirs("results/2025-07-07/")
	if err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}
	sort.Strings(times)
	wantTimes := []string{"results/2025-07-07/210032/", "results/2025-07-07/230000/"}
	if !reflect.DeepEqual(times, wantTimes) {
		t.Errorf("ListDirs(date) = %v, want %v", times, wantTimes)
	}
}

func TestLocalBackend_Download(t *testing.T) {
	b := NewLocalBackend(t.TempDir())
	key := "results/2025-07-07/210032/mentions.csv"
	if err := b.Put(key, []byte("Symbol,Mentions\nGME,3\n")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	dest := filepath.Join(t.TempDir(), "download", "mentions.csv")
	if err := b.Download(key, dest); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Contains(data, []byte("GME,3")) {
		t.Errorf("downloaded content = %s", data)
	}

	if err := b.Download("results/missing", dest); !IsNotFound(err) {
		t.Errorf("Download(missing) error = %v, want NotFoundError", err)
	}
}
