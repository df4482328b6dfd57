package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportController manages patient-owned PDF reports. Records carry a stable
// uuid; the index-addressed routes are kept for compatibility and resolve the
// index over the insertion-ordered list.
type ReportController struct {
	db    *gorm.DB
	blob  BlobStore
	fetch *http.Client
}

func NewReportController(db *gorm.DB, blob BlobStore, fetch *http.Client) *ReportController {
	if fetch == nil {
		fetch = http.DefaultClient
	}
	return &ReportController{db: db, blob: blob, fetch: fetch}
}

// UploadReport validates the PDF before any blob store call, uploads it and
// appends the report record to the caller's list.
func (rc *ReportController) UploadReport(c *gin.Context) {
	patientID := c.GetUint("patientID")

	name := c.PostForm("report_name")
	description := c.PostForm("description")
	file, header, err := c.Request.FormFile("file")
	if name == "" || description == "" || err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		respondError(c, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	reportID := uuid.NewString()
	fileURL, err := rc.blob.UploadRaw(c.Request.Context(), file, reportID, "reports")
	if err != nil {
		log.Println("Error uploading report:", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload report")
		return
	}

	report := models.Report{
		ReportID:    reportID,
		PatientID:   patientID,
		Name:        name,
		Description: description,
		FileURL:     fileURL,
	}
	if err := rc.db.Create(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save report")
		return
	}
	respondOK(c, gin.H{"message": "Report uploaded successfully", "report": report})
}

// ListReports returns the caller's reports in insertion order.
func (rc *ReportController) ListReports(c *gin.Context) {
	patientID := c.GetUint("patientID")

	reports, err := rc.ownReports(patientID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	respondOK(c, gin.H{"reports": reports})
}

func (rc *ReportController) ownReports(patientID uint) ([]models.Report, error) {
	reports := []models.Report{}
	err := rc.db.Where("patient_id = ?", patientID).Order("id").Find(&reports).Error
	return reports, err
}

// reportByRef resolves either a stable report id or a legacy positional index
// into the caller's report list.
func (rc *ReportController) reportByRef(patientID uint, ref string) (models.Report, error) {
	if index, err := strconv.Atoi(ref); err == nil {
		reports, err := rc.ownReports(patientID)
		if err != nil {
			return models.Report{}, err
		}
		if index < 0 || index >= len(reports) {
			return models.Report{}, gorm.ErrRecordNotFound
		}
		return reports[index], nil
	}

	var report models.Report
	err := rc.db.Where("patient_id = ? AND report_id = ?", patientID, ref).First(&report).Error
	return report, err
}

// DeleteReport removes one report addressed by id or index.
func (rc *ReportController) DeleteReport(c *gin.Context) {
	patientID := c.GetUint("patientID")

	report, err := rc.reportByRef(patientID, c.Param("ref"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}
	if err := rc.db.Delete(&models.Report{}, report.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete report")
		return
	}
	respondMessage(c, "Report deleted")
}

// GetReportPDF relays the stored PDF bytes from the blob store to the caller.
func (rc *ReportController) GetReportPDF(c *gin.Context) {
	patientID := c.GetUint("patientID")

	report, err := rc.reportByRef(patientID, c.Param("ref"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}

	resp, err := rc.fetch.Get(report.FileURL)
	if err != nil {
		log.Println("Error fetching report from blob store:", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch report")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch report: %d", resp.StatusCode))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to read report")
		return
	}

	filename := strings.ReplaceAll(report.Name, " ", "_") + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}
