package stremio

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap"
)

type catalogResponse struct {
	Metas []types.MetaPreviewItem `json:"metas"`
}

type metaResponse struct {
	Meta types.MetaItem `json:"meta"`
}

type streamResponse struct {
	Streams []types.StreamItem `json:"streams"`
}

func createHealthHandler(logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.Debug("healthHandler called")
		return c.SendString("OK")
	}
}

func createRootHandler(redirectURL string, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.Debug("rootHandler called")
		c.Set(fiber.HeaderLocation, redirectURL)
		return c.SendStatus(fiber.StatusTemporaryRedirect)
	}
}

func createManifestHandler(manifest types.Manifest, logger *zap.Logger) (fiber.Handler, error) {
	manifestBody, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}

	return func(c fiber.Ctx) error {
		logger.Debug("manifestHandler called")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(manifestBody)
	}, nil
}

func createCatalogHandler(catalogHandlers map[string]CatalogHandler, policy cachePolicy, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.Debug("catalogHandler called")

		requestedType := c.Params("type")
		requestedID := unescapeParam(c.Params("id"))

		catalogHandler, ok := catalogHandlers[requestedType]
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		extra, err := parseExtras(c.Params("extras"))
		if err != nil {
			logger.Warn("Couldn't parse catalog extras", zap.Error(err), zap.String("extras", c.Params("extras")))
			return c.SendStatus(fiber.StatusBadRequest)
		}

		// Upstream calls aren't canceled when the client goes away.
		items, err := catalogHandler(context.Background(), requestedID, extra)
		if err != nil {
			return handlerError(c, err, logger)
		}
		if items == nil {
			items = []types.MetaPreviewItem{}
		}

		return sendCacheable(c, catalogResponse{Metas: items}, policy, logger)
	}
}

func createMetaHandler(metaHandlers map[string]MetaHandler, policy cachePolicy, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.Debug("metaHandler called")

		requestedType := c.Params("type")
		requestedID := unescapeParam(c.Params("id"))

		metaHandler, ok := metaHandlers[requestedType]
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		meta, err := metaHandler(context.Background(), requestedID)
		if err != nil {
			return handlerError(c, err, logger)
		}

		return sendCacheable(c, metaResponse{Meta: meta}, policy, logger)
	}
}

func createStreamHandler(streamHandlers map[string]StreamHandler, policy cachePolicy, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.Debug("streamHandler called")

		requestedType := c.Params("type")
		requestedID := unescapeParam(c.Params("id"))

		streamHandler, ok := streamHandlers[requestedType]
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		streams, err := streamHandler(context.Background(), requestedID)
		if err != nil {
			return handlerError(c, err, logger)
		}
		if streams == nil {
			streams = []types.StreamItem{}
		}

		return sendCacheable(c, streamResponse{Streams: streams}, policy, logger)
	}
}

func handlerError(c fiber.Ctx, err error, logger *zap.Logger) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Addon handler returned error", zap.Error(err), zap.String("url", c.OriginalURL()))
	}
	return c.SendStatus(status)
}

// sendCacheable writes res as JSON, with Cache-Control and ETag headers according to the policy.
// When the client already has the current version, only "304 Not Modified" is sent.
func sendCacheable(c fiber.Ctx, res any, policy cachePolicy, logger *zap.Logger) error {
	resBody, err := json.Marshal(res)
	if err != nil {
		logger.Error("Couldn't marshal response", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if policy.maxAge > 0 {
		cacheControl := "max-age=" + strconv.FormatFloat(policy.maxAge.Seconds(), 'f', 0, 64)
		if policy.public {
			cacheControl += ", public"
		} else {
			cacheControl += ", private"
		}
		c.Set(fiber.HeaderCacheControl, cacheControl)

		if policy.handleEtag {
			etag := `"` + strconv.FormatUint(xxhash.Sum64(resBody), 16) + `"`
			c.Set(fiber.HeaderETag, etag)
			if c.Get(fiber.HeaderIfNoneMatch) == etag {
				return c.SendStatus(fiber.StatusNotModified)
			}
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(resBody)
}
