package controllers

import (
	"time"

	"certhub/aggregator"
	"certhub/config"
	"certhub/database"
	"certhub/middleware"
	"certhub/utils"
	validators "certhub/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

var (
	searchAggregator *aggregator.Aggregator
	searchCache      *aggregator.ResultCache
	docStore         utils.DocumentStore
)

// InitCertificateControllers wires the aggregator, its result cache and the
// document store. Called once from main after config and database are up.
func InitCertificateControllers() {
	if ttl := config.AppConfig.SearchCacheTTL; ttl > 0 {
		searchCache = aggregator.NewResultCache(time.Duration(ttl) * time.Second)
	}
	searchAggregator = aggregator.New(aggregator.DefaultSources(database.Database.Db), searchCache)
	docStore = utils.NewDocumentStore()
}

// SearchCertificates is the public lookup: one national ID in, one merged
// and paginated page of canonical certificates out.
func SearchCertificates(c *fiber.Ctx) error {
	params, ok := c.Locals("validatedSearch").(*validators.SearchParams)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := searchAggregator.Search(c.UserContext(), params.NationalID, params.Offset, params.Limit)
	if err != nil {
		if err == aggregator.ErrInvalidNationalID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid national ID!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", result)
}

// invalidateSearchCache drops a cached lookup after an admin mutation so
// stale results do not outlive the edit.
func invalidateSearchCache(nationalID string) {
	if searchCache != nil && nationalID != "" {
		searchCache.Invalidate(nationalID)
	}
}
