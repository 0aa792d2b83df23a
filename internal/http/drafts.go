package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/tasks"
)

// DraftsController serves the intake drafts. Enrichment and cataloging go through the task
// queue when one is configured and run inline otherwise.
type DraftsController struct {
	store    DraftStore
	books    drafts.BookCreator
	activity drafts.ActivityRecorder
	enricher tasks.DraftEnricher
	queue    TaskQueue
}

func NewDraftsController(store DraftStore, books drafts.BookCreator, activity drafts.ActivityRecorder, enricher tasks.DraftEnricher, queue TaskQueue) *DraftsController {
	return &DraftsController{
		store:    store,
		books:    books,
		activity: activity,
		enricher: enricher,
		queue:    queue,
	}
}

type addDraftsRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

type removeDraftsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// List handles GET /api/drafts
func (dc *DraftsController) List(c *gin.Context) {
	items := dc.store.All()
	if status := c.Query("status"); status != "" {
		items = dc.store.ByStatus(domain.DraftStatus(status))
	}
	c.JSON(http.StatusOK, gin.H{"drafts": items, "count": len(items)})
}

// Get handles GET /api/drafts/:id
func (dc *DraftsController) Get(c *gin.Context) {
	draft, ok := dc.store.Get(c.Param("id"))
	if !ok {
		respondNotFound(c, "draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Add handles POST /api/drafts
// Blank codes are skipped. New drafts are queued for enrichment when a queue is configured.
func (dc *DraftsController) Add(c *gin.Context) {
	var req addDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "codes are required")
		return
	}

	created := dc.store.AddBatch(req.Codes)

	var taskIDs []string
	if dc.queue != nil && dc.enricher != nil {
		for _, d := range created {
			if d.ISBN == "" {
				continue
			}
			ids, err := dc.queue.Enqueue(tasks.EnrichDraftTask{DraftID: d.ID})
			if err != nil {
				respondInternalError(c, err, "enqueue draft enrichment")
				return
			}
			taskIDs = append(taskIDs, ids...)
		}
	}

	respondCreated(c, gin.H{"drafts": created, "count": len(created), "task_ids": taskIDs})
}

// Update handles PATCH /api/drafts/:id
func (dc *DraftsController) Update(c *gin.Context) {
	var patch domain.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid draft patch")
		return
	}

	id := c.Param("id")
	if !dc.store.UpdateOne(id, patch) {
		respondNotFound(c, "draft")
		return
	}
	draft, _ := dc.store.Get(id)
	c.JSON(http.StatusOK, draft)
}

// Remove handles DELETE /api/drafts/:id
func (dc *DraftsController) Remove(c *gin.Context) {
	dc.store.RemoveOne(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// RemoveMany handles POST /api/drafts/remove
func (dc *DraftsController) RemoveMany(c *gin.Context) {
	var req removeDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ids are required")
		return
	}
	dc.store.RemoveMany(req.IDs)
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/drafts
func (dc *DraftsController) Clear(c *gin.Context) {
	dc.store.ClearAll()
	c.Status(http.StatusNoContent)
}

// Enrich handles POST /api/drafts/:id/enrich
func (dc *DraftsController) Enrich(c *gin.Context) {
	if dc.enricher == nil {
		respondError(c, http.StatusServiceUnavailable, "metadata lookup is disabled")
		return
	}

	id := c.Param("id")
	if _, ok := dc.store.Get(id); !ok {
		respondNotFound(c, "draft")
		return
	}

	if dc.queue != nil {
		ids, err := dc.queue.Enqueue(tasks.EnrichDraftTask{DraftID: id})
		if err != nil {
			respondInternalError(c, err, "enqueue draft enrichment")
			return
		}
		respondAccepted(c, "enrichment queued", gin.H{"task_id": ids[0]})
		return
	}

	draft, err := dc.enricher.EnrichDraft(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "enrich draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Catalog handles POST /api/drafts/catalog
func (dc *DraftsController) Catalog(c *gin.Context) {
	userID := GetUserID(c)

	if dc.queue != nil {
		ids, err := dc.queue.Enqueue(tasks.CatalogDraftsTask{UserID: userID})
		if err != nil {
			respondInternalError(c, err, "enqueue cataloging")
			return
		}
		respondAccepted(c, "cataloging queued", gin.H{"task_id": ids[0]})
		return
	}

	result, err := dc.store.Catalog(c.Request.Context(), dc.books, dc.activity, userID)
	if err != nil {
		respondInternalError(c, err, "catalog drafts")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cataloged": result.Cataloged,
		"count":     len(result.Cataloged),
		"failed":    result.Failed,
	})
}
