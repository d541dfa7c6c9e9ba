package stream

import (
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Status is a snapshot of playback state, safe to read from other
// goroutines via Streamer.Status.
type Status struct {
	Index  int  `json:"index"`
	Loops  int  `json:"loops"`
	Paused bool `json:"paused"`
	Ended  bool `json:"ended"`
}

// Streamer plays an animation to a remote pixel display: every tick it
// advances the controller with the tick time, marshals the resulting
// frame and publishes it over MQTT. Playback commands arriving from
// other goroutines (the api server, the MQTT control topic) are funnelled
// through a channel so the animation is only ever touched from the run
// loop.
type Streamer struct {
	client     mqtt.Client
	controller *Controller
	config     Config
	control    chan string

	mu        sync.Mutex
	status    Status
	lastFrame image.Image
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, controller *Controller) *Streamer {
	s := new(Streamer)
	s.client = client
	s.controller = controller
	s.config = config
	s.control = make(chan string, 8)
	return s
}

// Subscribe registers for playback commands ("pause", "resume", "reset",
// "reset-full") on the control topic. Called from the MQTT on-connect
// handler.
func (s *Streamer) Subscribe() {
	topic := s.config.Mqtt.Topics.Control
	if topic == "" {
		return
	}
	token := s.client.Subscribe(topic, 1, func(client mqtt.Client, m mqtt.Message) {
		s.Command(string(m.Payload()))
	})
	token.Wait()
	if token.Error() != nil {
		log.Printf("subscribe %s: %v", topic, token.Error())
	}
}

// Command queues a playback command for the run loop. Unknown commands
// are logged and dropped there.
func (s *Streamer) Command(cmd string) {
	select {
	case s.control <- cmd:
	default:
		// A full queue means the run loop is behind; dropping a
		// command is better than blocking a callback.
	}
}

// Status returns the playback state as of the last tick.
func (s *Streamer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastFrame returns the most recently published frame, or nil before the
// first tick.
func (s *Streamer) LastFrame() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFrame
}

// SendFrame advances playback to time now and publishes the frame due.
func (s *Streamer) SendFrame(now time.Time) {
	img := s.controller.Frame(now)
	token := s.client.Publish(s.config.Mqtt.Topics.Stream, 1, false, MarshalFrame(img))
	token.Wait()

	a := s.controller.Animation()
	s.mu.Lock()
	s.status = Status{Index: a.Index(), Loops: a.Loops(), Paused: a.Paused(), Ended: a.Ended()}
	s.lastFrame = img
	s.mu.Unlock()
}

// Run causes the Streamer to send frames continuously.
func (s *Streamer) Run() {
	interval := time.Second / 30
	if s.config.Player.FrameRate > 0 {
		interval = time.Duration(float64(time.Second) / s.config.Player.FrameRate)
	}
	publishTimer := time.NewTicker(interval)
	for {
		select {
		case t := <-publishTimer.C:
			s.SendFrame(t)
		case cmd := <-s.control:
			s.handle(cmd)
		}
	}
}

// handle applies a queued playback command.
func (s *Streamer) handle(cmd string) {
	now := time.Now()
	switch cmd {
	case "pause":
		s.controller.Pause(now)
	case "resume":
		s.controller.Resume(now)
	case "reset":
		s.controller.Reset(false)
	case "reset-full":
		s.controller.Reset(true)
	default:
		log.Printf("unknown control command %q", cmd)
	}
}
