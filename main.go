package main

import (
	"flag"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/gifplay/anim"
	"github.com/matt-g-everett/gifplay/api"
	"github.com/matt-g-everett/gifplay/decode"
	"github.com/matt-g-everett/gifplay/stream"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	a.Streamer.Subscribe()
}

func (a *app) run() {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	a.Streamer.Run()
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	// Absent loops means play forever.
	a.Config.Player.Loops = anim.Unlimited
	a.Config.Player.FrameRate = 30
	a.Config.Player.TransitionSecs = 5

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&a.Config)
	if err != nil {
		panic(err)
	}
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	animation, err := decode.Open(a.Config.Player.File, a.Config.Player.Loops)
	if err != nil {
		log.Fatalf("load %s: %v", a.Config.Player.File, err)
	}
	controller := stream.NewController(animation, a.Config.Player.FrameRate, a.Config.Player.TransitionSecs)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("gifplay").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	client := mqtt.NewClient(options)

	a.Client = client
	a.Streamer = stream.NewStreamer(a.Config, client, controller)

	if a.Config.Api.Addr != "" {
		server := api.NewApi(a.Streamer)
		go server.Serve(a.Config.Api.Addr)
	}

	a.run()
}
