package srv

type Srv struct {
	ai AIDriver
}

type ApplyFunc func(*Srv)

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai = SetupAI(cfg)
	}
}

// ApplyAIDriver 直接注入驱动实例，测试用
func ApplyAIDriver(driver AIDriver) ApplyFunc {
	return func(s *Srv) {
		s.ai = driver
	}
}

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) AI() AIDriver {
	return s.ai
}
