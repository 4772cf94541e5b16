package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"shipops-server/internal/infra/async"
	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/httpapi/internal"
	"shipops-server/internal/operations/usecases"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin validation happens at the CORS layer
		return true
	},
}

// StepEventMessage is the wire form of a step update pushed to subscribed
// clients.
type StepEventMessage struct {
	Type       string                `json:"type"`
	ShipmentID string                `json:"shipment_id"`
	Timestamp  time.Time             `json:"timestamp"`
	Step       internal.StepResponse `json:"step"`
}

// StepEventWebSocketController streams step updates over websockets. Clients
// subscribe per shipment; updates for other shipments are filtered out
// before writing.
type StepEventWebSocketController struct {
	broker     async.InternalBroker
	clients    map[*websocket.Conn]domain.ID
	clientsMux sync.RWMutex
	broadcast  chan StepEventMessage
	register   chan clientRegistration
	unregister chan *websocket.Conn
	ctx        context.Context
	cancel     context.CancelFunc
}

type clientRegistration struct {
	conn       *websocket.Conn
	shipmentID domain.ID
}

func NewStepEventWebSocketController(broker async.InternalBroker) *StepEventWebSocketController {
	ctx, cancel := context.WithCancel(context.Background())

	wsc := &StepEventWebSocketController{
		broker:     broker,
		clients:    make(map[*websocket.Conn]domain.ID),
		broadcast:  make(chan StepEventMessage, 256),
		register:   make(chan clientRegistration),
		unregister: make(chan *websocket.Conn),
		ctx:        ctx,
		cancel:     cancel,
	}

	go wsc.run()

	return wsc
}

var _ httpserver.Controller = (*StepEventWebSocketController)(nil)

func (wsc *StepEventWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/shipments/{shipment_id}/steps", wsc.handleWebSocket())
}

func (wsc *StepEventWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shipmentID := httpserver.GetPathParam(r, "shipment_id")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("step event subscriber connected",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("shipment_id", shipmentID),
		)

		wsc.register <- clientRegistration{conn: conn, shipmentID: domain.ID(shipmentID)}

		go wsc.handlePingPong(conn)
		go wsc.handleClient(conn)
	}
}

func (wsc *StepEventWebSocketController) handleClient(conn *websocket.Conn) {
	defer func() {
		wsc.unregister <- conn
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			break
		}
	}
}

func (wsc *StepEventWebSocketController) handlePingPong(conn *websocket.Conn) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (wsc *StepEventWebSocketController) run() {
	subscription, err := wsc.broker.Subscribe(usecases.TopicStepEvents)
	if err != nil {
		slog.Error("failed to subscribe to step events", slog.String("error", err.Error()))
		return
	}
	defer wsc.broker.Unsubscribe(usecases.TopicStepEvents, subscription)

	for {
		select {
		case <-wsc.ctx.Done():
			return

		case registration := <-wsc.register:
			wsc.clientsMux.Lock()
			wsc.clients[registration.conn] = registration.shipmentID
			wsc.clientsMux.Unlock()
			slog.Info("websocket client registered", slog.Int("total_clients", len(wsc.clients)))

		case client := <-wsc.unregister:
			wsc.clientsMux.Lock()
			if _, ok := wsc.clients[client]; ok {
				delete(wsc.clients, client)
				client.Close()
			}
			wsc.clientsMux.Unlock()
			slog.Info("websocket client unregistered", slog.Int("total_clients", len(wsc.clients)))

		case message := <-wsc.broadcast:
			wsc.clientsMux.RLock()
			for client, shipmentID := range wsc.clients {
				if shipmentID.String() != message.ShipmentID {
					continue
				}
				client.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := client.WriteJSON(message); err != nil {
					slog.Error("failed to write step event to websocket client", slog.String("error", err.Error()))
					client.Close()
					delete(wsc.clients, client)
				}
			}
			wsc.clientsMux.RUnlock()

		case brokerMsg := <-subscription.Receiver:
			if brokerMsg.Event != usecases.EventStepUpdated {
				continue
			}

			step, ok := brokerMsg.Value.(domain.Step)
			if !ok {
				continue
			}

			message := StepEventMessage{
				Type:       "step_updated",
				ShipmentID: step.ShipmentID.String(),
				Timestamp:  time.Now(),
				Step:       internal.FromStep(step),
			}

			select {
			case wsc.broadcast <- message:
			default:
				slog.Warn("broadcast channel full, dropping step event")
			}
		}
	}
}

func (wsc *StepEventWebSocketController) Shutdown() {
	slog.Info("shutting down step event websocket controller")
	wsc.cancel()

	wsc.clientsMux.Lock()
	for client := range wsc.clients {
		client.Close()
	}
	wsc.clientsMux.Unlock()
}
