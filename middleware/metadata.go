package middleware

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// MetadataOptions identifies the service stamped into response metadata.
type MetadataOptions struct {
	ServiceName    string
	ServiceVersion string
	APIVersion     string
}

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Metadata enriches JSON envelope responses with request timing, service
// identity, and API version under the "meta" key. Non-JSON and non-object
// bodies pass through untouched.
func Metadata(opts MetadataOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		receivedAt := time.Now()

		writer := &bufferedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		body := writer.body.Bytes()
		c.Writer = writer.ResponseWriter

		envelope := map[string]any{}
		if len(body) == 0 || json.Unmarshal(body, &envelope) != nil {
			c.Writer.Write(body)
			return
		}

		respondedAt := time.Now()
		envelope["meta"] = map[string]any{
			"request": map[string]any{
				"id":           GetRequestID(c),
				"received_at":  receivedAt.UTC().Format(time.RFC3339Nano),
				"responded_at": respondedAt.UTC().Format(time.RFC3339Nano),
				"duration":     respondedAt.Sub(receivedAt).Seconds(),
			},
			"service": map[string]any{
				"name":    opts.ServiceName,
				"version": opts.ServiceVersion,
			},
			"api": map[string]any{
				"version": opts.APIVersion,
			},
		}

		enriched, err := json.Marshal(envelope)
		if err != nil {
			c.Writer.Write(body)
			return
		}

		c.Writer.Header().Set("Content-Length", strconv.Itoa(len(enriched)))
		c.Writer.Write(enriched)
	}
}
