package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/kobzevvv/rulescan/domain"
)

// FileHelper collects and loads rule documents from the filesystem.
// Implements domain.DocumentReader.
type FileHelper struct {
	excludePatterns  []string
	respectGitignore bool
	gitignore        *ignore.GitIgnore
}

// NewFileHelper creates a FileHelper with no exclusions
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// NewFileHelperWithOptions creates a FileHelper honoring exclude patterns
// and, when requested, the .gitignore at the scan root.
func NewFileHelperWithOptions(excludePatterns []string, respectGitignore bool, root string) *FileHelper {
	h := &FileHelper{
		excludePatterns:  excludePatterns,
		respectGitignore: respectGitignore,
	}
	if respectGitignore && root != "" {
		gitignorePath := filepath.Join(root, ".gitignore")
		if gi, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
			h.gitignore = gi
		}
	}
	return h
}

// CollectDocumentFiles collects rule document files from paths. Files are
// matched by extension; excluded directories are skipped during the walk
// rather than filtered afterwards.
func (h *FileHelper) CollectDocumentFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if h.isDocumentFile(path) && !h.isExcluded(path) {
				files = append(files, path)
			}
			continue
		}

		err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				dirName := filepath.Base(filePath)
				for _, pattern := range h.excludePatterns {
					if pattern == dirName {
						return filepath.SkipDir
					}
					if matched, _ := filepath.Match(pattern, dirName); matched {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if h.isDocumentFile(filePath) && !h.isExcluded(filePath) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// LoadDocuments reads every file into a Document. The document id is the
// path as collected, so baseline keys can match against directory names
// as well as file names.
func (h *FileHelper) LoadDocuments(paths []string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		docs = append(docs, domain.Document{
			ID:   filepath.ToSlash(path),
			Text: string(content),
		})
	}
	return docs, nil
}

// IsValidDocumentFile checks whether a path looks like a rule document
func (h *FileHelper) IsValidDocumentFile(path string) bool {
	return h.isDocumentFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (h *FileHelper) isDocumentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".mdc"
}

func (h *FileHelper) isExcluded(path string) bool {
	for _, pattern := range h.excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	if h.gitignore != nil && h.gitignore.MatchesPath(path) {
		return true
	}
	return false
}

// ResolveDocumentPaths returns existing files directly or collects
// documents from directories.
func ResolveDocumentPaths(fileHelper *FileHelper, paths []string) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectDocumentFiles(paths)
}
