package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/akolanti/DocQueryAPI/internal/adapter"
	"github.com/akolanti/DocQueryAPI/internal/adapter/utils"
	"github.com/akolanti/DocQueryAPI/internal/api"
)

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostIngestHandler handles the uploading of PDF or DOCX documents for ingestion.
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data, chunks and embeds it, uploads the original to the stage and returns the assigned location.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  false  "Display name override for the document"
// @Param        document       formData  file    true   "The PDF, DOCX, TXT or RTF file to upload"
// @Success      201  {object}  api.IngestResponse "Document ingested"
// @Failure      400  {object}  api.ErrorResponse  "Missing fields, file too large or no readable text"
// @Failure      502  {object}  api.ErrorResponse  "A downstream dependency failed"
// @Router       /documents [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	// optional display name beats the upload filename
	docName := r.FormValue("document_name")
	if docName == "" {
		docName = fileMetadata.Filename
	}

	data, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not read file")
		return
	}

	result, err := handlerInstance.ingest.Ingest(r.Context(), data, docName)
	if err != nil {
		logRH.Error("Ingestion failed", "document", docName, "error", err)
		code, msg := statusForError(err)
		WriteErrorResponse(w, code, msg)
		return
	}

	writeJsonResponse(w, http.StatusCreated, adapter.ToIngestResponse(result))
}

// QueryHandler godoc
// @Summary      Ask a question against ingested documents
// @Description  Embeds the question, retrieves the most similar chunks (optionally restricted to file_ids) and returns a grounded answer with its sources.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question, optional file id filter and top_k"
// @Success      200      {object}  api.QueryResponse "Answer plus supporting sources"
// @Failure      400      {object}  api.ErrorResponse "Invalid request data"
// @Failure      502      {object}  api.ErrorResponse "A downstream dependency failed"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the query handler reader :", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	result, err := handlerInstance.rag.Query(r.Context(), requestData.Question, requestData.FileIds, topKOrDefault(requestData.TopK))
	if err != nil {
		logRH.Error("Query failed", "error", err)
		code, msg := statusForError(err)
		WriteErrorResponse(w, code, msg)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(result))
}

// ListDocumentsHandler godoc
// @Summary      List ingested documents
// @Description  Returns every ingested document ordered by creation time.
// @Tags         Documents
// @Produce      json
// @Success      200  {array}   api.DocumentResponse
// @Failure      502  {object}  api.ErrorResponse "Document store unavailable"
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	docs, err := handlerInstance.docs.ListDocuments(r.Context())
	if err != nil {
		logRH.Error("Listing documents failed", "error", err)
		code, msg := statusForError(err)
		WriteErrorResponse(w, code, msg)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponses(docs))
}

// ViewHandler godoc
// @Summary      Stream the original document
// @Description  Resolves the stored object across historical storage layouts and streams the first candidate that exists.
// @Tags         Documents
// @Produce      application/pdf
// @Param        fileId      path   string  true   "Document file id"
// @Param        identifier  query  string  false  "Storage key override when the document row is missing or stale"
// @Param        stage       query  string  false  "Stage reference override, with or without the leading @"
// @Success      200  "The raw object bytes"
// @Failure      400  {object}  api.ErrorResponse "Invalid identifier or stage reference"
// @Failure      502  {object}  api.ErrorResponse "No storage candidate resolved"
// @Router       /documents/{fileId}/view [get]
func ViewHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	fileId := utils.GetChiURLParam(r, "fileId")
	identifier := r.URL.Query().Get("identifier")
	stageRef := r.URL.Query().Get("stage")

	obj, err := handlerInstance.streamer.Stream(r.Context(), identifier, fileId, stageRef)
	if err != nil {
		logRH.Error("Object resolution failed", "fileId", fileId, "identifier", identifier, "error", err)
		code, msg := statusForError(err)
		WriteErrorResponse(w, code, msg)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=0, no-cache")
	if obj.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", obj.Filename))
	}
	// resolution provenance, callers use it to repair stale rows
	w.Header().Set("X-Resolved-Identifier", obj.Identifier)
	w.Header().Set("X-Stage-Reference", obj.StageReference)
	if obj.FileId != "" {
		w.Header().Set("X-File-Id", obj.FileId)
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		// headers are gone, all we can do is log
		logRH.Error("Stream interrupted", "fileId", fileId, "error", err)
	}
}
