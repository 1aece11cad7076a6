package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"notestack-be/pkg/client"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

func newShareCommand(a *app) *cobra.Command {
	var pngPath string
	var size int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "share <note-id>",
		Short: "Show a QR code another user can scan to copy the note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}

			if pngPath != "" {
				png, err := c.ShareQR(cmd.Context(), args[0], size)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, png, 0o644); err != nil {
					return err
				}
				a.success("QR code written to %s", pngPath)
				return nil
			}

			data, err := c.ShareNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			raw, err := json.Marshal(data)
			if err != nil {
				return err
			}
			if asJSON {
				fmt.Fprintln(a.out, string(raw))
				return nil
			}

			code, err := qrcode.New(string(raw), qrcode.Medium)
			if err != nil {
				return fmt.Errorf("note is too large for a QR code: %w", err)
			}
			fmt.Fprint(a.out, code.ToSmallString(false))
			a.success("Scan to add %q", data.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write the QR code as a PNG file instead")
	cmd.Flags().IntVar(&size, "size", 512, "PNG size in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw share payload")
	return cmd
}

func newReceiveCommand(a *app) *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Import a shared note from a scanned QR code",
		Long: `Import a shared note.

With --data the payload is imported directly. Otherwise every line read from
stdin is treated as one scanned code, which is how USB barcode scanners type.
A failed import keeps scanning; the command ends after the first success.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}

			if payload != "" {
				data, err := client.ParseShareData(payload)
				if err != nil {
					return err
				}
				note, err := c.ReceiveNote(cmd.Context(), data)
				if err != nil {
					return err
				}
				a.success("Note added successfully! %q is in %s", note.Title, notebookName(note))
				return nil
			}

			return a.scan(cmd, c)
		},
	}
	cmd.Flags().StringVar(&payload, "data", "", "share payload JSON")
	return cmd
}

var errNoCode = errors.New("input ended before a note was imported")

func (a *app) scan(cmd *cobra.Command, c *client.Client) error {
	camera := client.NewLineCamera(a.in)
	done := make(chan struct{})

	var session *client.ScanSession
	session = client.NewScanSession(camera, c, func(state client.ScanState, err error) {
		switch state {
		case client.ScanFailed:
			a.warn("%v, scan again", err)
			_ = session.Retry()
		case client.ScanSuccess:
			close(done)
		}
	})
	defer session.Close()

	a.warn("Waiting for a code on stdin...")
	if err := session.Start(); err != nil {
		return err
	}

	select {
	case <-done:
		note := session.Note()
		a.success("Note added successfully! %q is in %s", note.Title, notebookName(note))
		return nil
	case <-camera.Done():
		// The last line may still be importing.
		if session.State() == client.ScanSuccess {
			note := session.Note()
			a.success("Note added successfully! %q is in %s", note.Title, notebookName(note))
			return nil
		}
		return errNoCode
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
}
