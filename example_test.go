package mmapbuf_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/mmapbuf"
)

// Example demonstrates typed absolute-offset access over a mapped file.
func Example() {
	path := filepath.Join(os.TempDir(), "mmapbuf_example.bin")
	if err := os.WriteFile(path, make([]byte, 4096), 0o600); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(path)

	buf, err := mmapbuf.Open(path, mmapbuf.WithWritable(true))
	if err != nil {
		log.Fatal(err)
	}
	defer buf.Close()

	if err := buf.PutInt64(1024, 42); err != nil {
		log.Fatal(err)
	}
	v, err := buf.GetInt64(1024)
	if err != nil {
		log.Fatal(err)
	}

	// Flush dirty pages before relying on durability.
	if err := buf.Force(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Println(v, buf.Capacity())
	// Output: 42 4096
}

// ExampleWrap demonstrates sharing one physical buffer through views with
// different relocation bases.
func ExampleWrap() {
	target := mmapbuf.NewByteBuffer(4096)
	view := mmapbuf.Wrap(target, 1000)

	if err := view.Put(10, 0x5A); err != nil {
		log.Fatal(err)
	}
	b, err := target.Get(1010)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("0x%X %d\n", b, view.Capacity())
	// Output: 0x5A 3096
}
