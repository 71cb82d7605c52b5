package stream

import (
	"encoding/json"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	config     Config
	client     mqtt.Client
	controller *Controller
}

// NewStreamer creates an instance of a Streamer. Status is published whenever
// one of the controller's animations finishes.
func NewStreamer(config Config, client mqtt.Client, controller *Controller) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.controller = controller
	controller.SetOnFinish(func(string) { s.PublishStatus() })
	return s
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame() error {
	f := s.controller.CalculateFrame(s.config.Strip.Pixels)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.config.Mqtt.Topics.Stream, 0, false, b)
	token.Wait()
	return token.Error()
}

// PublishStatus publishes a retained JSON snapshot of every animation. It does
// not wait for the broker, so it is safe to call from animation callbacks.
func (s *Streamer) PublishStatus() {
	topic := s.config.Mqtt.Topics.Status
	if topic == "" {
		return
	}

	b, err := json.Marshal(s.controller.Status())
	if err != nil {
		log.Printf("Failed to encode status: %v", err)
		return
	}

	token := s.client.Publish(topic, 1, true, b)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("Failed to publish status: %v", token.Error())
		}
	}()
}

func (s *Streamer) handleControl(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())

	var cmd Command
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		log.Printf("Ignoring malformed command: %v", err)
		return
	}

	if err := s.controller.HandleCommand(cmd); err != nil {
		log.Printf("Ignoring command: %v", err)
		return
	}
	s.PublishStatus()
}

// Subscribe listens for control commands. It is called on every (re)connect.
func (s *Streamer) Subscribe() error {
	topic := s.config.Mqtt.Topics.Control
	if topic == "" {
		return nil
	}

	token := s.client.Subscribe(topic, 0, s.handleControl)
	token.Wait()
	return token.Error()
}

// Run causes the Streamer to send Frames continuously until done is closed.
func (s *Streamer) Run(done <-chan struct{}) {
	interval := time.Duration(float64(time.Second) / s.config.Strip.FrameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	for {
		select {
		case <-done:
			return
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				log.Printf("Failed to send frame: %v", err)
			}
		}
	}
}
