package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// ContactRepositoryImpl implements the ContactRepository interface on top of
// a single JSON file. Every operation loads the whole file; every write
// replaces it.
type ContactRepositoryImpl struct {
	fs     afero.Fs
	path   string
	logger *logger.Logger

	// mu serializes load-modify-write cycles. Reads go without it because
	// writes replace the file by rename.
	mu sync.Mutex
}

// NewContactRepository creates a contact repository backed by path on fs.
// The file and its directory are created empty if absent.
func NewContactRepository(fs afero.Fs, path string, log *logger.Logger) (ports.ContactRepository, error) {
	r := &ContactRepositoryImpl{
		fs:     fs,
		path:   path,
		logger: log.WithComponent("contact_store"),
	}

	if err := r.ensureFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *ContactRepositoryImpl) ensureFile() error {
	exists, err := afero.Exists(r.fs, r.path)
	if err != nil {
		return fmt.Errorf("stat phonebook %s: %w", r.path, err)
	}
	if exists {
		return nil
	}

	if err := r.fs.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create phonebook directory: %w", err)
	}
	if err := r.save(newPhonebook()); err != nil {
		return fmt.Errorf("create phonebook %s: %w", r.path, err)
	}

	r.logger.Infow("Created empty phonebook", "path", r.path)
	return nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context) ([]entities.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.load().contacts(), nil
}

func (r *ContactRepositoryImpl) Add(ctx context.Context, contact entities.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.load()
	if book.has(contact.Name) {
		return fmt.Errorf("contact '%s' %w", contact.Name, entities.ErrContactExists)
	}

	book.put(contact.Name, record{Phone: contact.Phone, Alias: contact.Alias})
	if err := r.save(book); err != nil {
		return fmt.Errorf("save phonebook: %w", err)
	}

	return nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, name string) (*entities.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.load()
	removed, ok := book.remove(name)
	if !ok {
		return nil, fmt.Errorf("contact '%s' %w", name, entities.ErrContactNotFound)
	}

	if err := r.save(book); err != nil {
		return nil, fmt.Errorf("save phonebook: %w", err)
	}

	return &entities.Contact{Name: name, Phone: removed.Phone, Alias: removed.Alias}, nil
}

// load reads the whole file. A missing, unreadable or malformed file yields
// an empty phonebook.
func (r *ContactRepositoryImpl) load() *phonebook {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debugw("Phonebook file missing, treating as empty", "path", r.path)
		} else {
			r.logger.Warnw("Phonebook unreadable, treating as empty", "path", r.path, "error", err)
		}
		return newPhonebook()
	}

	book, ok := decodePhonebook(data)
	if !ok {
		r.logger.Warnw("Phonebook is not a JSON object, treating as empty", "path", r.path)
	}
	return book
}

// save writes the whole phonebook to a temp file next to the target and
// renames it into place.
func (r *ContactRepositoryImpl) save(book *phonebook) error {
	data, err := book.encode()
	if err != nil {
		return err
	}

	dir, base := filepath.Split(r.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(r.fs, dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		r.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		r.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := r.fs.Rename(tmpName, r.path); err != nil {
		r.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	return nil
}
