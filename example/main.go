package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/esiqveland/tinynotify"
)

func main() {
	err := runMain()
	if err != nil {
		log.Printf("\nerror: %v\n", err)
		os.Exit(1)
	}
}

func runMain() error {
	s := tinynotify.NewSession(
		tinynotify.WithAppName("Test GO App"),
		tinynotify.WithAppIcon("mail-unread"),
		// override with custom logger
		tinynotify.WithLogger(log.New(os.Stdout, "notify: ", log.Flags())),
	)
	defer s.Close()

	if err := s.Connect(); err != nil {
		return err
	}

	DebugServerFeatures(s)

	// Create a Notification to send
	n := tinynotify.NewNotification("Test %d", "This is a test of the DBus bindings for go, run %s.")
	n.SetFormatting(true)
	n.SetUrgency(tinynotify.UrgencyCritical)
	n.SetCategory("im.received")
	n.SetExpireTimeout(10 * time.Second)

	done := false
	// Listen for actions invoked!
	onAction := func(n *tinynotify.Notification, key string) {
		log.Printf("ActionInvoked: %v Key: %v", n.ID(), key)
		if key == "cancel" {
			_ = s.CloseNotification(n)
		}
	}
	n.AddAction("cancel", "Cancel", onAction)
	n.AddAction("open", "Open", onAction)
	n.OnClosed(func(n *tinynotify.Notification, reason tinynotify.Reason) {
		log.Printf("NotificationClosed: Reason: %v", reason)
		done = true
	})

	if err := s.Send(n, 1, "one"); err != nil {
		return err
	}
	log.Printf("sent notification id: %v", n.ID())

	time.Sleep(2 * time.Second)
	if err := s.Update(n, 2, "two"); err != nil {
		log.Printf("error updating notification: %v", err)
	}

	for !done {
		ok, err := s.DispatchEvent(30 * time.Second)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("no event within 30s, closing")
			return s.CloseNotification(n)
		}
	}
	return nil
}

func DebugServerFeatures(s *tinynotify.Session) {
	// List server features!
	caps, err := s.Capabilities()
	if err != nil {
		log.Printf("error fetching capabilities: %v", err)
	}
	for x := range caps {
		fmt.Printf("Registered capability: %v\n", caps[x])
	}

	info, err := s.ServerInformation()
	if err != nil {
		log.Printf("error getting server information: %v", err)
	}
	fmt.Printf("Name:    %v\n", info.Name)
	fmt.Printf("Vendor:  %v\n", info.Vendor)
	fmt.Printf("Version: %v\n", info.Version)
	fmt.Printf("Spec:    %v\n", info.SpecVersion)
}
