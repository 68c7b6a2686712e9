package main

import (
	"flag"
	"fmt"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/handler"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/svc"
	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	configFile = flag.String("f", "etc/serve.yaml", "the config file")
	serveAddr  = flag.String("h", "", "the serve address, overrides Http.Addr")
)

func main() {
	flag.Parse()

	c := config.MustLoad(*configFile)
	logx.MustSetup(c.Log)
	defer logx.Close()

	if *serveAddr != "" {
		c.Http.Addr = *serveAddr
	}

	ctx, err := svc.NewServiceContext(c)
	logx.Must(err)
	defer ctx.Close()

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(ctx)

	fmt.Printf("Starting http server at %s...\n", c.Http.Addr)
	if err = router.Run(c.Http.Addr); err != nil {
		logx.Error(err)
	}
}
