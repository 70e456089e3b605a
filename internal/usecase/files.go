package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/domain"
)

// FilesUseCase implements the activity file download tools. Without an output
// path the file content is returned inline, base64 encoded.
type FilesUseCase struct {
	api    func(cfg *configs.Config) FilesAPI
	logger *slog.Logger
}

func NewFilesUseCase(api func(cfg *configs.Config) FilesAPI, logger *slog.Logger) *FilesUseCase {
	return &FilesUseCase{api: api, logger: logger.With("component", "files_usecase")}
}

// DownloadOriginal fetches the file originally uploaded for the activity
// (FIT, TCX or GPX, whatever the device produced).
func (uc *FilesUseCase) DownloadOriginal(ctx context.Context, cfg *configs.Config, activityID, outputPath string) string {
	content, err := uc.api(cfg).DownloadActivityFile(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to download activity file", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}
	return uc.deliver(activityID, "", content, outputPath,
		"File content is base64 encoded. Decode to get original file.",
		"Activity file saved to %s",
		"download_activity_file")
}

// DownloadFIT fetches the activity converted to FIT.
func (uc *FilesUseCase) DownloadFIT(ctx context.Context, cfg *configs.Config, activityID, outputPath string) string {
	content, err := uc.api(cfg).DownloadFITFile(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to download FIT file", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}
	return uc.deliver(activityID, "FIT", content, outputPath,
		"File content is base64 encoded. Decode to get FIT file.",
		"FIT file saved to %s",
		"download_fit_file")
}

// DownloadGPX fetches the activity converted to GPX.
func (uc *FilesUseCase) DownloadGPX(ctx context.Context, cfg *configs.Config, activityID, outputPath string) string {
	content, err := uc.api(cfg).DownloadGPXFile(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to download GPX file", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}
	return uc.deliver(activityID, "GPX", content, outputPath,
		"File content is base64 encoded. Decode to get GPX file.",
		"GPX file saved to %s",
		"download_gpx_file")
}

func (uc *FilesUseCase) deliver(activityID, format string, content []byte, outputPath, inlineNote, savedMessage, queryType string) string {
	data := map[string]any{
		"activity_id": activityID,
		"size_bytes":  len(content),
	}
	putS(data, "format", format)

	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return domain.ErrorResponse{
					Message: "Unexpected error: " + err.Error(),
					Kind:    domain.ErrInternal,
				}.Build()
			}
		}
		if err := os.WriteFile(outputPath, content, 0o644); err != nil {
			return domain.ErrorResponse{
				Message: "Unexpected error: " + err.Error(),
				Kind:    domain.ErrInternal,
			}.Build()
		}
		data["saved_to"] = outputPath
		return domain.Response{
			Data:      data,
			QueryType: queryType,
			Metadata:  map[string]any{"message": fmt.Sprintf(savedMessage, outputPath)},
		}.Build()
	}

	data["content_base64"] = base64.StdEncoding.EncodeToString(content)
	data["note"] = inlineNote
	return domain.Response{Data: data, QueryType: queryType}.Build()
}
