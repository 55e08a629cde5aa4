// Command gen_fixtures compiles every testdata/*.bas fixture into its
// matching .img memory image, concurrently, writing each image beside
// its source fixture.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/aruslantsev/simpletron/internal/compiler"
	"github.com/aruslantsev/simpletron/internal/image"
)

func main() {
	dir := flag.String("dir", "testdata", "directory of .bas fixtures to compile")
	timeout := flag.Duration("timeout", 5*time.Second, "overall deadline for the batch")
	flag.Parse()

	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, *dir); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, dir string) error {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)

	for _, entry := range entries {
		entry := entry
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bas") {
			continue
		}
		eg.Go(func() error {
			return compileFixture(ctx, dir, entry.Name())
		})
	}

	return eg.Wait()
}

func compileFixture(ctx context.Context, dir, name string) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	srcPath := filepath.Join(dir, name)
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	mem, err := compiler.New().Compile(name, in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	outPath := strings.TrimSuffix(srcPath, ".bas") + ".img"
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	if err := image.Write(out, mem); err != nil {
		return fmt.Errorf("%s: %w", outPath, err)
	}
	return nil
}
