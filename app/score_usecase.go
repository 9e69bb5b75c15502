package app

import (
	"context"
	"fmt"

	"github.com/kobzevvv/rulescan/domain"
)

// ScoreUseCase orchestrates the corpus scoring workflow
type ScoreUseCase struct {
	service    domain.ScoreService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewScoreUseCase creates a new score use case
func NewScoreUseCase(service domain.ScoreService, formatter domain.OutputFormatter, fileHelper *FileHelper) *ScoreUseCase {
	if fileHelper == nil {
		fileHelper = NewFileHelper()
	}
	return &ScoreUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: fileHelper,
	}
}

// Execute collects documents from paths, scores them, and writes the
// formatted result to the request's output writer.
func (uc *ScoreUseCase) Execute(ctx context.Context, paths []string, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveDocumentPaths(uc.fileHelper, paths)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect documents", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no rule documents found in the specified paths", nil)
	}

	docs, err := uc.fileHelper.LoadDocuments(files)
	if err != nil {
		return nil, err
	}
	req.Documents = docs

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteScore(response, req.OutputFormat, req.ShowDetails, req.OutputWriter); err != nil {
			return nil, domain.NewAnalysisError("failed to write output", err)
		}
	}

	return response, nil
}

// AnalyzeFile scores a single document file
func (uc *ScoreUseCase) AnalyzeFile(ctx context.Context, filePath string, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	if !uc.fileHelper.IsValidDocumentFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a rule document: %s", filePath), nil)
	}

	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	return uc.Execute(ctx, []string{filePath}, req)
}
