package restyutil

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// TranscriptOutput receives formatted request/response transcripts.
type TranscriptOutput interface {
	Write(id string, contents string)
}

const messageIdContextKey = "xrobots.restyutil.capture.message_id"

type captureCtx struct {
	output    TranscriptOutput
	idcounter *uint64
}

// CaptureTranscripts dumps every request/response pair the client handles
// to the output, numbered in request order. `output` can be nil, in which
// case this is a no-op. Span instrumentation is separate, see
// telemetry.InstrumentResty.
func CaptureTranscripts(client *resty.Client, output TranscriptOutput) {
	if output == nil {
		return
	}
	var idcounter uint64
	c := captureCtx{output: output, idcounter: &idcounter}
	client.OnBeforeRequest(c.onBeforeRequest)
	client.OnAfterResponse(c.onAfterResponse)
	client.OnError(c.onError)
}

func (c captureCtx) onBeforeRequest(cli *resty.Client, req *resty.Request) error {
	messageId := strconv.FormatUint(atomic.AddUint64(c.idcounter, 1), 10)
	slog.Debug(
		"start request",
		"method", req.Method,
		"url", req.URL,
		"message_id", messageId,
	)
	req.SetContext(context.WithValue(req.Context(), messageIdContextKey, messageId))
	return nil
}

func (c captureCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	messageId, ok := res.Request.Context().Value(messageIdContextKey).(string)
	if !ok {
		return nil
	}
	c.output.Write(messageId, formatHttpMessage(res))
	slog.Debug(
		"request finished",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"status", res.StatusCode(),
		"message_id", messageId,
	)
	return nil
}

func (c captureCtx) onError(req *resty.Request, err error) {
	messageId, ok := req.Context().Value(messageIdContextKey).(string)
	if !ok {
		return
	}
	slog.Error(
		"request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
		"message_id", messageId,
	)
}
