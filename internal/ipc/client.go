package ipc

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"syscall"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, wrapDialError(path, err)
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

func wrapDialError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("daemon not reachable at %s (is lyricdropd running?): %w", path, err)
	}
	return err
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(method string, req, resp any) error {
	return c.client.Call(serviceName+"."+method, req, resp)
}

// Open starts an editing session for a video file.
func (c *Client) Open(path string) (*OpenResponse, error) {
	var resp OpenResponse
	if err := c.call("Open", OpenRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OpenOffline starts an editing session of the given duration with no video.
func (c *Client) OpenOffline(duration float64) (*OpenResponse, error) {
	var resp OpenResponse
	if err := c.call("Open", OpenRequest{Duration: &duration}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseVideo discards the current editing session.
func (c *Client) CloseVideo() (*CloseVideoResponse, error) {
	var resp CloseVideoResponse
	if err := c.call("CloseVideo", CloseVideoRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop processing.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.call("Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Timeline fetches the current timeline state.
func (c *Client) Timeline() (*TimelineResponse, error) {
	var resp TimelineResponse
	if err := c.call("Timeline", TimelineRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LyricsImport replaces timeline content with parsed lyric lines.
func (c *Client) LyricsImport(req LyricsImportRequest) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("LyricsImport", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LyricsAppend re-imports lyrics into an existing section.
func (c *Client) LyricsAppend(req LyricsAppendRequest) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("LyricsAppend", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SegmentUpdate adjusts a segment's timing or text.
func (c *Client) SegmentUpdate(req SegmentUpdateRequest) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SegmentUpdate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SegmentRemove removes a segment.
func (c *Client) SegmentRemove(id string) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SegmentRemove", SegmentRemoveRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SegmentSelect marks a segment as selected.
func (c *Client) SegmentSelect(id string) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SegmentSelect", SegmentSelectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SpacerInsert inserts silence at a point on the timeline.
func (c *Client) SpacerInsert(req SpacerInsertRequest) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SpacerInsert", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SectionAdd creates a section over the given range.
func (c *Client) SectionAdd(start, end float64) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SectionAdd", SectionAddRequest{StartTime: start, EndTime: end}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SectionRemove deletes a section and the segments it contains.
func (c *Client) SectionRemove(id string) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SectionRemove", SectionRemoveRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SectionResize moves a section's boundaries.
func (c *Client) SectionResize(req SectionResizeRequest) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SectionResize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SectionSelect marks a section as selected.
func (c *Client) SectionSelect(id string) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("SectionSelect", SectionSelectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlayheadSet moves the playhead.
func (c *Client) PlayheadSet(at float64) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("PlayheadSet", PlayheadSetRequest{At: at}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ZoomSet changes the timeline zoom factor.
func (c *Client) ZoomSet(factor float64) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.call("ZoomSet", ZoomSetRequest{Factor: factor}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActiveAt resolves the lyric segment speaking at a time.
func (c *Client) ActiveAt(at float64) (*ActiveAtResponse, error) {
	var resp ActiveAtResponse
	if err := c.call("ActiveAt", ActiveAtRequest{At: at}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportStart queues an export of the current timeline.
func (c *Client) ExportStart() (*ExportStartResponse, error) {
	var resp ExportStartResponse
	if err := c.call("ExportStart", ExportStartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportList lists export jobs.
func (c *Client) ExportList() (*ExportListResponse, error) {
	var resp ExportListResponse
	if err := c.call("ExportList", ExportListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportDescribe fetches a single export job.
func (c *Client) ExportDescribe(id int64) (*ExportDescribeResponse, error) {
	var resp ExportDescribeResponse
	if err := c.call("ExportDescribe", ExportDescribeRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportClear removes terminal export jobs.
func (c *Client) ExportClear() (*ExportClearResponse, error) {
	var resp ExportClearResponse
	if err := c.call("ExportClear", ExportClearRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
