package handlers

import (
	"io"
	"net/http"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	in := services.SubmitInput{Text: req.Text}
	if req.Image != nil && req.Image.Data != "" {
		img, err := classifier.DecodeImage(req.Image.MimeType, req.Image.Data)
		if err != nil {
			return respondError(c, err)
		}
		in.Image = img
	}

	report, err := h.reportService.Submit(c.UserContext(), middleware.ActorID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// Upload accepts a multipart form with a text field and an optional image
// file.
func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	in := services.SubmitInput{Text: c.FormValue("text")}

	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > classifier.MaxImageBytes {
			return respondError(c, classifier.ErrImageTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return invalidBody(c)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, classifier.MaxImageBytes+1))
		if err != nil {
			return invalidBody(c)
		}
		mime := fh.Header.Get(fiber.HeaderContentType)
		if mime == "" || mime == fiber.MIMEOctetStream {
			mime = http.DetectContentType(data)
		}
		in.Image = &classifier.Image{MimeType: mime, Data: data}
	}

	report, err := h.reportService.Submit(c.UserContext(), middleware.ActorID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

var filterParams = []string{"q", "category", "dateRange", "riskLevel", "sort"}

// List filters the feed with the query parameters given, layered over the
// caller's saved filters. Without any parameter the saved filters apply as is.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	actor := middleware.ActorID(c)

	var override *analytics.FilterState
	args := c.Context().QueryArgs()
	for _, p := range filterParams {
		if args.Has(p) {
			f := h.reportService.Filters(actor)
			if args.Has("q") {
				f.SearchTerm = c.Query("q")
			}
			if args.Has("category") {
				f.Category = c.Query("category")
			}
			if args.Has("dateRange") {
				f.DateRange = analytics.DateRange(c.Query("dateRange"))
			}
			if args.Has("riskLevel") {
				f.RiskLevel = analytics.RiskLevel(c.Query("riskLevel"))
			}
			if args.Has("sort") {
				f.SortOrder = analytics.SortOrder(c.Query("sort"))
			}
			override = &f
			break
		}
	}

	reports, applied, err := h.reportService.List(actor, override)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReportListResponse{Reports: reports, Total: len(reports), Filters: applied})
}

func (h *ReportHandler) ByCategory(c *fiber.Ctx) error {
	reports, err := h.reportService.ByCategory(c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports, "total": len(reports)})
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.reportService.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) AddComment(c *fiber.Ctx) error {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	comment, err := h.reportService.AddComment(c.UserContext(), c.Params("id"), middleware.ActorID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *ReportHandler) ToggleVerification(c *fiber.Ctx) error {
	v, err := h.reportService.ToggleVerification(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.VerificationResponse{Report: v.Report, Notice: v.Notice})
}

func (h *ReportHandler) SaveFilters(c *fiber.Ctx) error {
	var req analytics.FilterState
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	saved, err := h.reportService.SaveFilters(middleware.ActorID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.reportService.Dashboard())
}
