package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/config"
)

func TestStager_StageAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(filepath.Join(dir, "uploads"), 1024)

	f, err := s.Stage(strings.NewReader("hello world"), &multipart.FileHeader{Filename: "Notes.TXT", Size: 11})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if f.Ext != ".txt" || f.OriginalName != "Notes.TXT" || f.Size != 11 {
		t.Errorf("staged = %+v", f)
	}

	data, err := f.Read()
	if err != nil || string(data) != "hello world" {
		t.Fatalf("Read = %q, %v", data, err)
	}

	if err := f.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(f.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present: %v", err)
	}
	if err := f.Remove(); err != nil {
		t.Fatalf("second Remove should be a no-op: %v", err)
	}
}

func TestStager_DeclaredSizeTooLarge(t *testing.T) {
	s := NewStager(t.TempDir(), 4)
	_, err := s.Stage(strings.NewReader("12345"), &multipart.FileHeader{Filename: "a.txt", Size: 5})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestStager_ActualSizeTooLarge(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 4)
	_, err := s.Stage(strings.NewReader("123456789"), &multipart.FileHeader{Filename: "a.txt", Size: 1})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("oversized file left behind: %v", entries)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestArchive_Put(t *testing.T) {
	p := &fakePutter{}
	a := &Archive{s3: p, bucket: "sources"}

	key, err := a.Put(context.Background(), 5, "abc", "../chapter1.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "sources/5/abc/chapter1.pdf" {
		t.Errorf("key = %q", key)
	}
	if *p.input.Bucket != "sources" || *p.input.ContentType != "application/pdf" {
		t.Errorf("input = bucket %q, type %q", *p.input.Bucket, *p.input.ContentType)
	}
	if !bytes.Equal(p.body, []byte("%PDF")) {
		t.Errorf("body = %q", p.body)
	}
}

func TestArchive_PutError(t *testing.T) {
	a := &Archive{s3: &fakePutter{err: errors.New("denied")}, bucket: "b"}
	if _, err := a.Put(context.Background(), 1, "x", "a.txt", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewArchive_DisabledWithoutBucket(t *testing.T) {
	a, err := NewArchive(context.Background(), &config.Config{}, zerolog.Nop())
	if err != nil || a != nil {
		t.Fatalf("got %v, %v; want nil, nil", a, err)
	}
}

func TestStager_SweepStale(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 0)

	old := filepath.Join(dir, "old.pdf")
	fresh := filepath.Join(dir, "fresh.txt")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-3 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	n, err := s.SweepStale(time.Now().Add(-time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("SweepStale = %d, %v", n, err)
	}
	if _, err := os.Stat(old); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale file survived")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file removed: %v", err)
	}

	if n, err := NewStager(filepath.Join(dir, "missing"), 0).SweepStale(time.Now()); err != nil || n != 0 {
		t.Errorf("missing dir: %d, %v", n, err)
	}
}
