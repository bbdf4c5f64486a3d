// internal/handlers/upload.go
package handlers

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forma3d/catalog-backend/internal/config"
	"github.com/forma3d/catalog-backend/internal/media"
	"github.com/forma3d/catalog-backend/internal/services"
	"github.com/forma3d/catalog-backend/internal/uploader"
	"github.com/forma3d/catalog-backend/internal/utils"
)

type UploadHandler struct {
	mediaService   *services.MediaService
	productService *services.ProductService
	cfg            *config.Config
}

func NewUploadHandler(mediaService *services.MediaService, productService *services.ProductService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		mediaService:   mediaService,
		productService: productService,
		cfg:            cfg,
	}
}

func (h *UploadHandler) readUpload(fileHeader *multipart.FileHeader) (media.UploadInput, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return media.UploadInput{}, err
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return media.UploadInput{}, err
	}

	in := media.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        body,
	}

	if err := media.ValidateUpload(in, h.cfg.Media.MaxFileSize); err != nil {
		return media.UploadInput{}, err
	}
	if err := media.ValidateImageBytes(body); err != nil {
		return media.UploadInput{}, err
	}

	return in, nil
}

// POST /uploads
func (h *UploadHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}

	in, err := h.readUpload(fileHeader)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.mediaService.Upload(c.Request.Context(), in)
	if err != nil {
		utils.BadGatewayResponse(c, "Image upload failed")
		return
	}

	utils.CreatedResponse(c, result)
}

// DELETE /uploads/*fileId
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	fileID := strings.TrimPrefix(c.Param("fileId"), "/")
	if fileID == "" {
		utils.BadRequestResponse(c, "No file ID provided", nil)
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), fileID); err != nil {
		utils.BadGatewayResponse(c, "Image deletion failed")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "File deleted successfully",
	})
}

// POST /products/images
//
// Accepts a multipart batch under the "images" field and uploads each
// file independently. The response reports every file's outcome; a
// rejected or failed file never blocks its siblings. An optional
// "productId" field seeds the batch with the product's persisted
// images, the edit flow's starting state.
func (h *UploadHandler) UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", nil)
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		utils.BadRequestResponse(c, "No files provided", nil)
		return
	}

	coordinator := uploader.New(h.mediaService)

	if productIDStr := c.PostForm("productId"); productIDStr != "" {
		productID, err := uuid.Parse(productIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid product ID", nil)
			return
		}

		product, err := h.productService.GetByID(productID)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				utils.NotFoundResponse(c, "Product not found")
				return
			}
			utils.InternalErrorResponse(c, err.Error())
			return
		}

		seeds := make([]uploader.Descriptor, 0, len(product.Images))
		for _, img := range product.Images {
			seeds = append(seeds, uploader.Descriptor{
				URL:      img.URL,
				RemoteID: img.RemoteID,
				AltText:  img.AltText,
				Order:    img.Order,
			})
		}
		coordinator.Seed(seeds)
	}

	rejected := make([]uploader.Descriptor, 0)
	files := make([]uploader.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		in, err := h.readUpload(fh)
		if err != nil {
			rejected = append(rejected, uploader.Descriptor{
				AltText: fh.Filename,
				Status:  uploader.StatusFailed,
				Error:   err.Error(),
			})
			continue
		}
		files = append(files, uploader.File{
			Name:        in.FileName,
			ContentType: in.ContentType,
			Data:        in.Body,
		})
	}

	coordinator.Add(c.Request.Context(), files)
	coordinator.Wait()

	images := append(coordinator.Snapshot(), rejected...)

	uploaded := 0
	for _, d := range images {
		if d.Status == uploader.StatusUploaded {
			uploaded++
		}
	}

	utils.SuccessResponse(c, gin.H{
		"images":   images,
		"uploaded": uploaded,
		"failed":   len(images) - uploaded,
	})
}
