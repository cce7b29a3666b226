// Package fixture persists captured command invocations as a JSON document.
//
// A fixture file maps a lookup key (see Key) to the invocations recorded under
// it, in recording order:
//
//	{
//	  "echo:hello": [
//	    {
//	      "binary_name": "echo",
//	      "args": ["hello"],
//	      "stdout": "hello\n",
//	      "stderr": "",
//	      "exit_code": 0
//	    }
//	  ]
//	}
//
// Files are meant to be checked in next to the tests that use them. There is no
// locking: concurrent writers to the same file race and the last one wins.
package fixture
