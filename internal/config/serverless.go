package config

import "os"

// RuntimeInfo describes where the process is running. Lambda sets
// AWS_LAMBDA_FUNCTION_NAME on every function, so its presence is the
// detection signal.
type RuntimeInfo struct {
	Lambda       bool
	FunctionName string
	Region       string
	Stage        string
}

// Runtime inspects the environment on every call so tests can vary it.
func Runtime() RuntimeInfo {
	name := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	return RuntimeInfo{
		Lambda:       name != "",
		FunctionName: name,
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// DeploymentMode returns "serverless" inside Lambda and "server"
// everywhere else.
func DeploymentMode() string {
	if Runtime().Lambda {
		return "serverless"
	}
	return "server"
}
