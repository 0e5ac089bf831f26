package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/swapit-app/swapit_backend/configs"
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CheckAndGenerateCertificate issues a completion certificate once every
// session of the (learner, teacher, listing) triple is completed. Called
// after a session flips to completed; idempotent per triple.
func CheckAndGenerateCertificate(session models.Session) {
	completion, err := ComputeCourseCompletion(session.LearnerID, session.TeacherID, session.SkillListingID)
	if err != nil {
		log.Printf("🔥 Failed to compute completion for session %s: %v", session.ID, err)
		return
	}
	if !completion.IsCompleted {
		return
	}

	var existingCert models.Certificate
	if err := database.DB.
		Where("learner_id = ? AND teacher_id = ? AND listing_id = ?", session.LearnerID, session.TeacherID, session.SkillListingID).
		First(&existingCert).Error; err == nil {
		return
	}

	courseTitle := fmt.Sprintf("%s with %s", session.SkillListing.Title, session.Teacher.FullName)

	htmlData, err := generateCertificateHTML(session.Learner.FullName, session.Teacher.FullName, courseTitle)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, session.LearnerID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		LearnerID:      session.LearnerID,
		TeacherID:      session.TeacherID,
		ListingID:      session.SkillListingID,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for learner %s: %v", session.LearnerID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for learner %s.", courseTitle, session.LearnerID)
	}
}

func generateCertificateHTML(learnerName, teacherName, courseTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		LearnerName    string
		TeacherName    string
		CourseTitle    string
		CompletionDate string
	}{
		LearnerName:    learnerName,
		TeacherName:    teacherName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(pdfBytes []byte, learnerID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	publicID := fmt.Sprintf("certificates/%s_%s", learnerID, uuid.New().String())
	resp, err := cld.Upload.Upload(context.Background(), bytes.NewReader(pdfBytes), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
		Folder:       "swapit_certificates",
	})
	if err != nil {
		return "", err
	}

	return resp.SecureURL, nil
}
