// Package media provides image processing for property photography
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Listing photos are served at three widths: gallery, card, and thumbnail.
var variantWidths = []int{1600, 800, 400}

// ImageProcessor handles property photo and floor plan uploads.
type ImageProcessor struct {
	basePath string
}

// NewImageProcessor creates a new ImageProcessor rooted at basePath.
func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
	}
}

// ProcessPropertyPhoto saves an uploaded base64 photo under the property's
// media directory and generates WebP variants at each serving width.
// Returns the relative URL of the original plus the variant URLs.
func (p *ImageProcessor) ProcessPropertyPhoto(data, propertyID string) (string, []string, error) {
	if data == "" {
		return "", nil, fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", nil, fmt.Errorf("unsupported image format")
	}

	timestamp := time.Now().UnixMilli()
	filename := fmt.Sprintf("%s-%d.%s", propertyID, timestamp, ext)

	originalsDir := filepath.Join(p.basePath, "properties", "originals")
	variantsDir := filepath.Join(p.basePath, "properties", "variants")

	if err := os.MkdirAll(originalsDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create originals directory: %w", err)
	}
	if err := os.MkdirAll(variantsDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create variants directory: %w", err)
	}

	originalPath, err := writeBinaryImage(data, filename, originalsDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to save original image: %w", err)
	}

	variantPaths, err := p.generateVariants(originalPath, propertyID, timestamp, variantsDir)
	if err != nil {
		os.Remove(originalPath)
		return "", nil, fmt.Errorf("failed to generate variants: %w", err)
	}

	relativeOriginal := fmt.Sprintf("/media/properties/originals/%s", filename)
	relativeVariants := make([]string, len(variantPaths))
	for i, variantPath := range variantPaths {
		relativeVariants[i] = fmt.Sprintf("/media/properties/variants/%s", filepath.Base(variantPath))
	}
	return relativeOriginal, relativeVariants, nil
}

// ProcessFloorPlan saves a floor plan upload. SVG plans pass through as
// vector data; raster plans are stored unmodified.
func (p *ImageProcessor) ProcessFloorPlan(data, propertyID string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	plansDir := filepath.Join(p.basePath, "properties", "plans")
	if err := os.MkdirAll(plansDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plans directory: %w", err)
	}

	filename := fmt.Sprintf("%s-plan.%s", propertyID, ext)

	var err error
	if strings.Contains(data, "image/svg+xml") {
		_, err = writeSVG(data, filename, plansDir)
	} else {
		_, err = writeBinaryImage(data, filename, plansDir)
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("/media/properties/plans/%s", filename), nil
}

// DeletePropertyMedia removes a property's original photo and its variants.
func (p *ImageProcessor) DeletePropertyMedia(imagePath string) error {
	if imagePath == "" {
		return fmt.Errorf("empty image path")
	}

	filename := filepath.Base(imagePath)
	basename := filename
	if dotIndex := strings.LastIndex(filename, "."); dotIndex != -1 {
		basename = filename[:dotIndex]
	}

	originalPath := filepath.Join(p.basePath, strings.TrimPrefix(imagePath, "/media/"))
	if err := os.Remove(originalPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove original image: %w", err)
	}

	variantsDir := filepath.Join(p.basePath, "properties", "variants")
	for _, width := range variantWidths {
		variantPath := filepath.Join(variantsDir, fmt.Sprintf("%s_%dpx.webp", basename, width))
		// Missing variants are fine; remove what exists.
		os.Remove(variantPath)
	}
	return nil
}

// generateVariants creates the WebP serving widths from the saved original.
func (p *ImageProcessor) generateVariants(originalPath, propertyID string, timestamp int64, variantsDir string) ([]string, error) {
	originalFile, err := os.Open(originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}
	defer originalFile.Close()

	img, err := imaging.Decode(originalFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	basename := fmt.Sprintf("%s-%d", propertyID, timestamp)
	variantPaths := make([]string, len(variantWidths))

	for i, width := range variantWidths {
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)

		variantFilename := fmt.Sprintf("%s_%dpx.webp", basename, width)
		variantPath := filepath.Join(variantsDir, variantFilename)

		if err := webp.Save(variantPath, resized, &webp.Options{Quality: 85}); err != nil {
			for j := 0; j < i; j++ {
				os.Remove(variantPaths[j])
			}
			return nil, fmt.Errorf("failed to save WebP variant %s: %w", variantFilename, err)
		}
		variantPaths[i] = variantPath
	}
	return variantPaths, nil
}

// writeSVG decodes and writes an SVG upload as UTF-8 text.
func writeSVG(data, filename, targetDir string) (string, error) {
	svgPattern := regexp.MustCompile(`^data:image/svg\+xml;base64,`)
	if !svgPattern.MatchString(data) {
		return "", fmt.Errorf("invalid SVG base64 format")
	}

	decoded, err := base64.StdEncoding.DecodeString(svgPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write SVG file: %w", err)
	}
	return fullPath, nil
}

// writeBinaryImage decodes and writes a binary image upload (PNG, JPG, WebP).
func writeBinaryImage(data, filename, targetDir string) (string, error) {
	binaryPattern := regexp.MustCompile(`^data:image/\w+;base64,`)
	if !binaryPattern.MatchString(data) {
		return "", fmt.Errorf("invalid binary image base64 format")
	}

	decoded, err := base64.StdEncoding.DecodeString(binaryPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return fullPath, nil
}

// extractExtension auto-detects file extension from the data URI MIME type.
func extractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/svg+xml"):
		return "svg"
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	}
	return ""
}
