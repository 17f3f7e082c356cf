package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/ui"
)

const (
	readTimeout  = 10 * time.Minute
	writeTimeout = 5 * time.Second
	inputBuffer  = 16
)

// Server 前端连接
// 功能：websocket上接收输入批、返回帧；同一时刻只服务一个前端，帧循环单协程执行
type Server struct {
	ui  *ui.UI
	fps int

	upgrader websocket.Upgrader
	busy     atomic.Bool

	quit     chan struct{}
	quitOnce sync.Once
}

func New(u *ui.UI, fps int) *Server {
	if fps <= 0 {
		fps = 30
	}
	return &Server{
		ui:  u,
		fps: fps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		quit: make(chan struct{}),
	}
}

// Quit 前端发出退出指令后关闭
func (s *Server) Quit() <-chan struct{} {
	return s.quit
}

// Handler 全部HTTP路由：/ws、/healthz与时钟RPC
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.WSHandler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	s.ui.Session().Sim().Clock().Register(mux)
	return mux
}

// ListenAndServe 监听addr直到ctx结束
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if !s.busy.CompareAndSwap(false, true) {
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "viewer busy"), time.Now().Add(time.Second))
			return
		}
		defer s.busy.Store(false)
		log.Infof("viewer connected from %s", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// 读协程：只负责解码输入批，交给帧循环
		inputs := make(chan *ui.UserInput, inputBuffer)
		go func() {
			defer close(inputs)
			for {
				_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				in := &ui.UserInput{}
				if err := json.Unmarshal(msg, in); err != nil {
					log.Warnf("bad input batch: %v", err)
					continue
				}
				select {
				case inputs <- in:
				case <-ctx.Done():
					return
				}
			}
		}()

		if err := s.frameLoop(ctx, conn, inputs); err != nil {
			log.Warnf("viewer disconnected: %v", err)
			return
		}
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		log.Infof("viewer quit")
	}
}

// frameLoop 帧循环
// 算法说明：
// 1. 连接后先绘制一帧
// 2. InputOnly模式下阻塞等待输入，Animation模式下无输入时按帧率以空输入推进
// 3. 每次先Event再Draw，将帧写回前端；收到退出指令后返回
func (s *Server) frameLoop(ctx context.Context, conn *websocket.Conn, inputs <-chan *ui.UserInput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.ui.DumpBeforeAbort()
			panic(r)
		}
	}()
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	in := ui.NewUserInput()
	for {
		mode, hints := s.ui.Event(in)
		frame := s.ui.Draw(hints)
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
		if s.ui.Quit() {
			s.quitOnce.Do(func() { close(s.quit) })
			return nil
		}

		var tick <-chan time.Time
		if mode == ui.Animation {
			tick = ticker.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-inputs:
			if !ok {
				return errors.New("input closed")
			}
			in = next
		case <-tick:
			in = ui.NewUserInput()
		}
	}
}
