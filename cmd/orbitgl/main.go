package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/smasonuk/orbit3d"
	"github.com/smasonuk/orbit3d/glbackend"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	var configPath string
	var dumpConfig bool
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.BoolVar(&dumpConfig, "dump-config", false, "Print the effective config and exit")
	flag.Parse()

	cfg := orbit3d.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = orbit3d.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if dumpConfig {
		if err := orbit3d.WriteConfig(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		log.Fatalln("failed to create window:", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	backend, err := glbackend.New()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("OpenGL version", glbackend.Version())

	fbWidth, fbHeight := window.GetFramebufferSize()
	backend.Viewport(fbWidth, fbHeight)

	scene, err := orbit3d.NewScene(backend, cfg)
	if err != nil {
		log.Fatal(err)
	}
	scene.SetViewport(fbWidth, fbHeight)

	input := &inputAdapter{queue: scene.Input()}
	input.attach(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		backend.Viewport(width, height)
		scene.SetViewport(width, height)
	})

	for !window.ShouldClose() {
		if err := scene.Render(glfw.GetTime() * 1000); err != nil {
			log.Printf("Frame failed: %v", err)
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
}
