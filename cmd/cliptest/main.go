//go:build ignore

package main

import (
	"fmt"
	"time"

	"github.com/cazelabs/cazechat/internal/clipboard"
	"github.com/cazelabs/cazechat/internal/composer"
)

func main() {
	fmt.Println("Testing clipboard read...")
	img, err := clipboard.ReadImage()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if img == nil {
		fmt.Println("No image in clipboard")
		return
	}
	fmt.Printf("Image found: %dx%d, %d bytes\n", img.Width, img.Height, len(img.Data))
	if err := img.Validate(composer.MaxAttachmentSize); err != nil {
		fmt.Printf("Would be rejected: %v\n", err)
		return
	}
	fmt.Printf("Would attach as %s\n", img.Filename(time.Now()))
}
