package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth  = 800
	imageHeight = 600
)

var fontSearchPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// summaryImageService renders the summary PNG from current aggregate stats
type summaryImageService struct {
	countryRepo  CountryRepository
	metadataRepo RefreshMetadataRepository
	imagePath    string
}

// NewSummaryImageService creates a renderer writing to the given path
func NewSummaryImageService(
	countryRepo CountryRepository,
	metadataRepo RefreshMetadataRepository,
	imagePath string,
) SummaryRenderer {
	return &summaryImageService{
		countryRepo:  countryRepo,
		metadataRepo: metadataRepo,
		imagePath:    imagePath,
	}
}

func loadFace(points float64) font.Face {
	for _, path := range fontSearchPaths {
		if face, err := gg.LoadFontFace(path, points); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// Render draws the summary image and atomically replaces the artifact at the
// configured path.
func (s *summaryImageService) Render(ctx context.Context) error {
	total, err := s.countryRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to gather image stats: %w", err)
	}

	top, err := s.countryRepo.TopByGDP(ctx, 5)
	if err != nil {
		return fmt.Errorf("failed to gather top countries: %w", err)
	}

	lastRefresh, err := s.metadataRepo.GetLastRefresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to gather last refresh: %w", err)
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	titleFace := loadFace(36)
	headerFace := loadFace(24)
	bodyFace := loadFace(18)

	y := 40.0

	dc.SetRGB255(25, 118, 210)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored("Country Currency API Summary", imageWidth/2, y, 0.5, 0.5)
	y += 80

	dc.SetRGB255(0, 0, 0)
	dc.SetFontFace(headerFace)
	dc.DrawString(fmt.Sprintf("Total Countries: %d", total), 50, y)
	y += 60

	dc.SetRGB255(25, 118, 210)
	dc.DrawString("Top 5 Countries by Estimated GDP:", 50, y)
	y += 40

	dc.SetRGB255(0, 0, 0)
	dc.SetFontFace(bodyFace)
	for i, country := range top {
		gdp := "N/A"
		if country.EstimatedGDP != nil {
			gdp = "$" + humanize.FormatFloat("#,###.##", *country.EstimatedGDP)
		}
		dc.DrawString(fmt.Sprintf("%d. %s: %s", i+1, country.Name, gdp), 70, y)
		y += 35
	}
	y += 30

	refreshed := "Last Refreshed: Never"
	if lastRefresh != nil {
		refreshed = "Last Refreshed: " + lastRefresh.UTC().Format("2006-01-02 15:04:05 UTC")
	}
	dc.DrawString(refreshed, 50, y)

	if err := os.MkdirAll(filepath.Dir(s.imagePath), 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial artifact
	tmpPath := s.imagePath + ".tmp"
	if err := dc.SavePNG(tmpPath); err != nil {
		return fmt.Errorf("failed to save summary image: %w", err)
	}
	if err := os.Rename(tmpPath, s.imagePath); err != nil {
		return fmt.Errorf("failed to replace summary image: %w", err)
	}

	log.WithFields(log.Fields{
		"path":      s.imagePath,
		"countries": total,
		"top":       len(top),
		"at":        time.Now().UTC().Format(time.RFC3339),
	}).Info("Summary image rendered")

	return nil
}
