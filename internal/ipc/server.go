package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"log/slog"

	"lyricdrop/internal/daemon"
	"lyricdrop/internal/editor"
	"lyricdrop/internal/logging"
)

// serviceName is the RPC service identifier shared by server and client.
const serviceName = "Lyricdrop"

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName(serviceName, srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

// mutation runs a session operation and packages its outcome and the
// resulting timeline into resp.
func (s *service) mutation(resp *MutationResponse, fn func(session *editor.Session) (editor.Snapshot, editor.Outcome)) error {
	session, err := s.daemon.Session()
	if err != nil {
		return err
	}
	snapshot, outcome := fn(session)
	resp.Applied = outcome.Applied
	resp.Reason = outcome.Reason
	resp.Timeline = FromSnapshot(snapshot)
	return nil
}

func (s *service) Open(req OpenRequest, resp *OpenResponse) error {
	path := strings.TrimSpace(req.Path)
	if req.Duration != nil {
		if path != "" {
			return errors.New("open takes either a video path or a duration, not both")
		}
		snapshot, err := s.daemon.OpenOffline(*req.Duration)
		if err != nil {
			return err
		}
		resp.Timeline = FromSnapshot(snapshot)
		return nil
	}
	if path == "" {
		return errors.New("open requires a video path or a duration")
	}
	snapshot, err := s.daemon.OpenVideo(s.ctx, path)
	if err != nil {
		return err
	}
	resp.Timeline = FromSnapshot(snapshot)
	return nil
}

func (s *service) CloseVideo(_ CloseVideoRequest, resp *CloseVideoResponse) error {
	resp.Closed = s.daemon.CloseSession()
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.logger.Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.LockPath = status.LockFilePath
	resp.JobDBPath = status.JobDBPath
	resp.SessionOpen = status.SessionOpen
	resp.VideoPath = status.VideoPath
	resp.Duration = status.Duration
	resp.Revision = status.Revision
	resp.SegmentCount = status.SegmentCount
	resp.SectionCount = status.SectionCount
	resp.Jobs = JobSummary{
		Total:     status.Jobs.Total,
		Pending:   status.Jobs.Pending,
		Burning:   status.Jobs.Burning,
		Completed: status.Jobs.Completed,
		Failed:    status.Jobs.Failed,
	}
	resp.Dependencies = make([]DependencyStatus, 0, len(status.Dependencies))
	for _, dep := range status.Dependencies {
		resp.Dependencies = append(resp.Dependencies, DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		})
	}
	return nil
}

func (s *service) Timeline(_ TimelineRequest, resp *TimelineResponse) error {
	session, err := s.daemon.Session()
	if err != nil {
		return err
	}
	resp.Timeline = FromSnapshot(session.Snapshot())
	return nil
}

func (s *service) LyricsImport(req LyricsImportRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.ImportLyrics(req.Text, req.SectionStart, req.SectionEnd)
	})
}

func (s *service) LyricsAppend(req LyricsAppendRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.AppendLyrics(req.Text, req.SectionID)
	})
}

func (s *service) SegmentUpdate(req SegmentUpdateRequest, resp *MutationResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("segment update requires an id")
	}
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.UpdateSegment(req.ID, editor.SegmentUpdate{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Text:      req.Text,
		})
	})
}

func (s *service) SegmentRemove(req SegmentRemoveRequest, resp *MutationResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("segment remove requires an id")
	}
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.RemoveSegment(req.ID)
	})
}

func (s *service) SegmentSelect(req SegmentSelectRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.SelectSegment(req.ID)
	})
}

func (s *service) SpacerInsert(req SpacerInsertRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.InsertSpacer(req.At, req.Duration)
	})
}

func (s *service) SectionAdd(req SectionAddRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.AddSection(req.StartTime, req.EndTime)
	})
}

func (s *service) SectionRemove(req SectionRemoveRequest, resp *MutationResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("section remove requires an id")
	}
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.RemoveSection(req.ID)
	})
}

func (s *service) SectionResize(req SectionResizeRequest, resp *MutationResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("section resize requires an id")
	}
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.ResizeSection(req.ID, editor.SectionUpdate{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
	})
}

func (s *service) SectionSelect(req SectionSelectRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.SelectSection(req.ID)
	})
}

func (s *service) PlayheadSet(req PlayheadSetRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.SetPlayhead(req.At)
	})
}

func (s *service) ZoomSet(req ZoomSetRequest, resp *MutationResponse) error {
	return s.mutation(resp, func(session *editor.Session) (editor.Snapshot, editor.Outcome) {
		return session.SetZoom(req.Factor)
	})
}

func (s *service) ActiveAt(req ActiveAtRequest, resp *ActiveAtResponse) error {
	session, err := s.daemon.Session()
	if err != nil {
		return err
	}
	segment, found := session.ActiveAt(req.At)
	resp.Found = found
	if found {
		resp.Segment = fromSegment(segment)
	}
	return nil
}

func (s *service) ExportStart(_ ExportStartRequest, resp *ExportStartResponse) error {
	job, err := s.daemon.EnqueueExport(s.ctx)
	if err != nil {
		return err
	}
	resp.Job = FromJob(job)
	return nil
}

func (s *service) ExportList(_ ExportListRequest, resp *ExportListResponse) error {
	jobs, err := s.daemon.ListExports(s.ctx)
	if err != nil {
		return err
	}
	resp.Jobs = make([]ExportJob, 0, len(jobs))
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, FromJob(job))
	}
	return nil
}

func (s *service) ExportDescribe(req ExportDescribeRequest, resp *ExportDescribeResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid export job id %d", req.ID)
	}
	job, err := s.daemon.DescribeExport(s.ctx, req.ID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("export job %d not found", req.ID)
	}
	resp.Job = FromJob(job)
	return nil
}

func (s *service) ExportClear(_ ExportClearRequest, resp *ExportClearResponse) error {
	removed, err := s.daemon.ClearExports(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}
