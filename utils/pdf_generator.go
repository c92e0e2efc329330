package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"authbackend/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type userReportData struct {
	GeneratedAt string
	Count       int
	Users       []models.PublicUser
}

// GenerateUsersPDF renders the user roster to an A4 PDF via headless Chrome.
func GenerateUsersPDF(users []models.PublicUser) ([]byte, error) {
	tmpl, err := template.ParseFiles("templates/users_template.html")
	if err != nil {
		return nil, err
	}

	data := userReportData{
		GeneratedAt: time.Now().UTC().Format("02-Jan-2006 15:04"),
		Count:       len(users),
		Users:       users,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		table {
			width: 100%;
			border-collapse: collapse;
		}
		th, td {
			border: 1px solid #444;
			padding: 4px 8px;
			text-align: left;
		}
		tr {
			page-break-inside: avoid;
		}
		</style>
		</head>
		<body>` + body.String() + `</body></html>`

	// Create temp HTML file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "users_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
