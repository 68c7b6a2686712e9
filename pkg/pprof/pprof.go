package pprof

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const maxRetries = 5

// Register mounts the profiling handlers under /debug/pprof.
func Register(router *gin.Engine) {
	pprof.Register(router)
}

func randomAddr() string {
	return fmt.Sprintf("localhost:%d", 1024+rand.New(rand.NewSource(time.Now().UnixNano())).Intn(0xffff-1024))
}

// Start serves profiling in the background. With an empty addr a random
// local port is tried until one is free.
func Start(addr string) {
	threading.GoSafe(func() {
		router := gin.New()
		Register(router)

		for i := 0; i < maxRetries; i++ {
			a := addr
			if a == "" {
				a = randomAddr()
			}

			ln, err := net.Listen("tcp", a)
			if err != nil {
				logx.Errorf("pprof listen %s: %v", a, err)
				if addr != "" {
					return
				}
				continue
			}

			logx.Infof("pprof on http://%s/debug/pprof", ln.Addr())
			if err = router.RunListener(ln); err != nil {
				logx.Errorf("pprof: %v", err)
			}
			return
		}
	})
}
